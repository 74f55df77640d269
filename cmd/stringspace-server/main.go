// Command stringspace-server is the daemon entry point: it loads
// configuration, opens the StringSpace engine from its data file, and
// serves the wire protocol over TCP until interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/stringspace/internal/serverconfig"
	"github.com/calvinalkan/stringspace/internal/stringspace"
	"github.com/calvinalkan/stringspace/internal/wire"
)

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

func run(args []string, errOut *os.File) int {
	flags := flag.NewFlagSet("stringspace-server", flag.ContinueOnError)

	flagConfig := flags.String("config", "", "Path to a HuJSON config file")
	flagListen := flags.String("listen", "", "Listen address, e.g. :9315")
	flagDataFile := flags.String("data-file", "", "Path to the persistence data file")
	flagLimit := flags.Int("default-limit", 0, "Default best-completions limit")
	flagLogJSON := flags.Bool("log-json", false, "Emit logs as JSON")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	cfg := serverconfig.Default()

	if *flagConfig != "" {
		fileCfg, err := serverconfig.LoadFile(*flagConfig, cfg)
		if err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}

		cfg = fileCfg
	}

	if *flagListen != "" {
		cfg.ListenAddr = *flagListen
	}

	if *flagDataFile != "" {
		cfg.DataFile = *flagDataFile
	}

	if *flagLimit != 0 {
		cfg.DefaultLimit = *flagLimit
	}

	if *flagLogJSON {
		cfg.LogJSON = true
	}

	logger := newLogger(cfg.LogJSON, errOut)

	engine, err := stringspace.LoadFromFile(cfg.DataFile, 0, stringspace.SystemClock{}, func(msg string) {
		logger.Warn(msg)
	})
	if err != nil {
		logger.Error("failed to load data file", "path", cfg.DataFile, "error", err)
		return 1
	}

	logger.Info("loaded data file", "path", cfg.DataFile, "entries", engine.Len())

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Error("failed to listen", "addr", cfg.ListenAddr, "error", err)
		return 1
	}

	srv := wire.NewServer(engine, cfg.DataFile, cfg.DefaultLimit, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("serving", "addr", ln.Addr().String())

	if err := srv.Serve(ctx, ln); err != nil {
		logger.Error("serve failed", "error", err)
		return 1
	}

	return 0
}

// newLogger builds the daemon's single *slog.Logger, text by default or
// JSON when configured, grounded on the structured-logging conventions
// used throughout the retrieval pack's mesh networking code.
func newLogger(json bool, w *os.File) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
