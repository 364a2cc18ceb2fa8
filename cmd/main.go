package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/pitchstats/internal/config"
	"github.com/okian/pitchstats/pkg/logger"
	"github.com/okian/pitchstats/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	code := 0
	if err := run(ctx, cfg, metrics.Default()); err != nil {
		logger.Get().Error(ctx, "report failed", logger.Error(err))
		code = 1
	}
	_ = logger.Sync()
	stop()
	os.Exit(code)
}
