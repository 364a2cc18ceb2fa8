package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/pitchstats/internal/playergen"
	"github.com/okian/pitchstats/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers = 20000
	defaultSeed    = 1
	defaultTimeout = 5 * time.Minute
)

func main() {
	var (
		players = flag.Int("players", defaultPlayers, "Number of players to generate")
		seed    = flag.Uint64("seed", defaultSeed, "Generator seed")
		workers = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		output  = flag.String("output", "", "Output CSV file (default: players_TIMESTAMP.csv)")
		verify  = flag.Bool("verify", false, "Reload the written file through the dataset loader")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		playergen.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		logger.SetLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	config := &playergen.Config{
		Players:    *players,
		Seed:       *seed,
		Workers:    *workers,
		OutputFile: *output,
		Verify:     *verify,
		Verbose:    *verbose,
	}

	if _, err := playergen.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
