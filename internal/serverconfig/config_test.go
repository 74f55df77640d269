package serverconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/stringspace/internal/serverconfig"
)

func Test_Default_HasSaneValues(t *testing.T) {
	t.Parallel()

	cfg := serverconfig.Default()
	require.Equal(t, ":9315", cfg.ListenAddr)
	require.Equal(t, 15, cfg.DefaultLimit)
}

func Test_LoadFile_OverridesOnlySetFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.hujson")

	// HuJSON allows comments and trailing commas.
	contents := `{
		// only override the listen address
		"listen_addr": "127.0.0.1:7000",
	}`

	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := serverconfig.LoadFile(path, serverconfig.Default())
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:7000", cfg.ListenAddr)
	require.Equal(t, serverconfig.Default().DataFile, cfg.DataFile)
	require.Equal(t, serverconfig.Default().DefaultLimit, cfg.DefaultLimit)
}

func Test_LoadFile_MissingFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := serverconfig.LoadFile(filepath.Join(t.TempDir(), "missing.hujson"), serverconfig.Default())
	require.Error(t, err)
}
