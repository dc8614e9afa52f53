package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/xprank/internal/config"
	"github.com/okian/xprank/pkg/logger"
	"github.com/okian/xprank/pkg/metrics"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	if err := logger.Init(); err != nil {
		// logger is not available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(exitError)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run loads configuration, executes one command and exports metrics if configured.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Defaults -> optional file -> env
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config:", err)
		return exitError
	}

	if cfg.LogFormat == string(logger.FormatJSON) {
		if err := logger.InitWithWriter(stderr, logger.FormatJSON); err != nil {
			fmt.Fprintln(stderr, "failed to initialize logging:", err)
			return exitError
		}
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c, err := newCLI(cfg, log, stdout, stderr)
	if err != nil {
		log.Error(ctx, "failed to build service", logger.Error(err))
		return exitError
	}
	code := c.Execute(ctx, args)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "failed to write metrics textfile", logger.String("path", cfg.MetricsFile), logger.Error(err))
			if code == exitOK {
				code = exitError
			}
		}
	}
	return code
}
