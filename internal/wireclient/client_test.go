package wireclient_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/stringspace/internal/stringspace"
	"github.com/calvinalkan/stringspace/internal/wire"
	"github.com/calvinalkan/stringspace/internal/wireclient"
)

type fixedClock int

func (c fixedClock) TodayDays() int { return int(c) }

func startTestServer(t *testing.T) string {
	t.Helper()

	engine := stringspace.NewEngine(0, fixedClock(1))
	dataFile := t.TempDir() + "/data.txt"
	srv := wire.NewServer(engine, dataFile, 0, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	go func() { _ = srv.Serve(ctx, ln) }()
	t.Cleanup(cancel)

	return ln.Addr().String()
}

func Test_Client_InsertThenQuery_RoundTrips(t *testing.T) {
	t.Parallel()

	addr := startTestServer(t)

	c, err := wireclient.Dial(addr, time.Second)
	require.NoError(t, err)

	defer func() { _ = c.Close() }()

	accepted, total, err := c.Insert("ssh", "ssp", "ssl", "sshfs")
	require.NoError(t, err)
	require.Equal(t, 4, accepted)
	require.Equal(t, 4, total)

	matches, err := c.Prefix("ss")
	require.NoError(t, err)
	require.Len(t, matches, 4)

	best, err := c.BestCompletions("ss", 10)
	require.NoError(t, err)
	require.Len(t, best, 4)

	path, err := c.DataFile()
	require.NoError(t, err)
	require.NotEmpty(t, path)
}

func Test_Client_Similar_NegativeThreshold_IsNotError(t *testing.T) {
	t.Parallel()

	addr := startTestServer(t)

	c, err := wireclient.Dial(addr, time.Second)
	require.NoError(t, err)

	defer func() { _ = c.Close() }()

	_, err = c.Similar("wrold", -1)
	require.NoError(t, err) // engine accepts any threshold; no match expected
}
