package playergen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/pitchstats/internal/adapters/dataset"
	"github.com/okian/pitchstats/internal/domain/metric"
	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/pkg/logger"
)

const (
	directoryPermission = 0750
	filePermission      = 0600
	verboseSample       = 5
)

// Run generates the configured players, writes them to the output file and
// optionally reloads the file to check it round-trips.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting player generation",
		logger.Int("players", config.Players),
		logger.Int("workers", config.Workers),
		logger.Any("seed", config.Seed),
		logger.String("output", config.OutputFile))

	records, err := Generate(ctx, config.Players, config.Seed, config.Workers)
	if err != nil {
		return stats, fmt.Errorf("player generation failed: %w", err)
	}
	stats.PlayersGenerated = len(records)
	if config.Verbose {
		stats.Sampled = displaySample(ctx, records)
	}

	filename := config.OutputFile
	if filename == "" {
		filename = "players_" + time.Now().Format("20060102_150405") + ".csv"
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return stats, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return stats, fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteCSV(file, records); err != nil {
		_ = file.Close()
		return stats, fmt.Errorf("failed to write players: %w", err)
	}
	if info, err := file.Stat(); err == nil {
		stats.BytesWritten = info.Size()
	}
	if err := file.Close(); err != nil {
		return stats, fmt.Errorf("failed to close file: %w", err)
	}
	logger.Get().Info(ctx, "players saved to file", logger.String("filename", filename))

	if config.Verify {
		if err := verify(ctx, filename, stats); err != nil {
			return stats, fmt.Errorf("verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// verify reloads the written file and checks its row count.
func verify(ctx context.Context, filename string, stats *Stats) error {
	tbl, err := dataset.LoadFile(ctx, filename)
	if err != nil {
		return err
	}
	stats.RowsVerified = tbl.Len()
	if tbl.Len() != stats.PlayersGenerated {
		return fmt.Errorf("reloaded %d rows, generated %d", tbl.Len(), stats.PlayersGenerated)
	}
	if best := metric.BestPlayers(tbl, 1); len(best) > 0 {
		logger.Get().Info(ctx, "verified generated file",
			logger.Int("rows", tbl.Len()),
			logger.String("best", best[0].Name),
			logger.Int("best_overall", best[0].Overall))
	}
	return nil
}

// displaySample logs the first few generated players and returns how many.
func displaySample(ctx context.Context, records []player.Record) int {
	n := min(verboseSample, len(records))
	for _, r := range records[:n] {
		logger.Get().Info(ctx, "generated player",
			logger.String("id", r.ID),
			logger.String("name", r.Name),
			logger.String("nationality", r.Nationality),
			logger.String("club", r.ClubOrUnknown()),
			logger.String("position", r.PrimaryPosition()),
			logger.Int("overall", r.Overall),
			logger.Int("potential", r.Potential))
	}
	return n
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.PlayersGenerated) / stats.Duration.Seconds()
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("playersGenerated", stats.PlayersGenerated),
		logger.Any("bytesWritten", stats.BytesWritten),
		logger.Int("rowsVerified", stats.RowsVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("playersPerSecond", perSecond))
}
