package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"company-analyzer/internal/logger"
	"company-analyzer/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the server until ctx is cancelled and returns the process
// exit code. Logs and spans are flushed on every path.
func execute(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.yaml", "path to config file")
	warm := fs.Bool("warm", false, "load the financial database before accepting requests")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer flushTelemetry()

	if err := run(ctx, *configPath, *warm); err != nil {
		logger.ErrorWithErr(ctx, "Server exited with error", err)
		return 1
	}
	logger.Info(context.Background(), "Server stopped")
	return 0
}

func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(ctx)
}

func run(ctx context.Context, configPath string, warm bool) error {
	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	deps, st, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}

	if warm {
		if _, err := st.Database(ctx); err != nil {
			// keep serving; the next request retries the load
			logger.Warn(ctx, "Database warm-up failed", "error", err)
		}
	}

	return server.New(cfg, deps).ListenAndServe(ctx)
}
