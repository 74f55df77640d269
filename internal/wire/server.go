package wire

import (
	"context"
	"log/slog"
	"net"
	"sync"

	"github.com/calvinalkan/stringspace/internal/stringspace"
)

// Server serializes access to one stringspace.Engine behind a single
// mutex and dispatches framed requests to it, per the serialization
// contract of spec §5: "Concurrent clients are serialized by the external
// framing layer... which holds the engine behind a single exclusive lock."
type Server struct {
	mu           sync.Mutex
	engine       *stringspace.Engine
	dataFilePath string
	defaultLimit int
	log          *slog.Logger
}

// NewServer constructs a Server around an already-open engine. dataFile is
// the path returned verbatim by the data-file operation and used as the
// save target after an insert adds new entries. defaultLimit is the
// best-completions limit applied when a request omits its optional second
// parameter; a value <= 0 falls back to
// stringspace.DefaultBestCompletionsLimit.
func NewServer(engine *stringspace.Engine, dataFile string, defaultLimit int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	if defaultLimit <= 0 {
		defaultLimit = stringspace.DefaultBestCompletionsLimit
	}

	return &Server{engine: engine, dataFilePath: dataFile, defaultLimit: defaultLimit, log: log}
}

// saveIfNeeded persists the store when at least one new entry was added
// since the last save, per §4.E. Save failures are logged, not returned:
// per §7, a slow or failing disk must not fail the insert that triggered
// it.
func (s *Server) saveIfNeeded() {
	if !s.engine.NeedsSave() {
		return
	}

	if err := s.engine.Save(s.dataFilePath); err != nil {
		s.log.Error("stringspace: save failed", "path", s.dataFilePath, "error", err)
	}
}

// Serve accepts connections on ln until ctx is canceled or Accept fails.
// Each connection is handled on its own goroutine; all goroutines share
// this Server's single mutex.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	var wg sync.WaitGroup

	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			s.handleConn(conn)
		}()
	}
}

// handleConn serves requests on one connection until it errors or the
// peer closes it. One (operation, params) request per frame, one framed
// response per request, per §6.1's framing contract.
func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	remote := conn.RemoteAddr().String()

	for {
		payload, err := ReadFrame(conn)
		if err != nil {
			return
		}

		op, params := DecodeRequest(payload)

		resp := s.handle(op, params)

		if err := WriteFrame(conn, []byte(resp)); err != nil {
			s.log.Warn("stringspace: write response failed", "remote", remote, "error", err)
			return
		}
	}
}

// handle serializes one request against the engine and returns its
// response payload.
func (s *Server) handle(op string, params []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dispatch(op, params)
}
