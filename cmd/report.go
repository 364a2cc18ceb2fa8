package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/pitchstats/internal/adapters/dataset"
	"github.com/okian/pitchstats/internal/adapters/series"
	app "github.com/okian/pitchstats/internal/app"
	"github.com/okian/pitchstats/internal/config"
	"github.com/okian/pitchstats/internal/domain/metric"
	"github.com/okian/pitchstats/pkg/logger"
	"github.com/okian/pitchstats/pkg/metrics"
)

const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Report is the JSON document the tool emits.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source"`
	Frames      []series.Frame `json:"frames"`
	Errors      []string       `json:"errors,omitempty"`
}

// run loads the dataset, computes every frame and writes the report.
func run(ctx context.Context, cfg *config.Config, m *metrics.Manager) error {
	svc := app.New(
		app.WithLogger(logger.Get().Named("service")),
		app.WithMetrics(m),
		app.WithAttributes(cfg.Attributes()),
		app.WithDatasetOptions(dataset.WithSQLiteTable(cfg.DatasetTable)),
	)
	if err := svc.Load(ctx, cfg.DatasetPath); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	report := buildReport(ctx, svc, cfg)
	report.Source = cfg.DatasetPath

	if err := writeReport(cfg.OutputPath, report); err != nil {
		return err
	}

	if cfg.MetricsTextfile != "" {
		m.UpdateSystem()
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return err
		}
	}
	logger.Get().Info(ctx, "report written",
		logger.Int("frames", len(report.Frames)),
		logger.Int("errors", len(report.Errors)),
		logger.String("output", cfg.OutputPath))
	return nil
}

// buildReport runs the queries concurrently and keeps frames in a fixed
// order. A failed query is reported in Errors and does not abort the rest.
func buildReport(ctx context.Context, svc *app.Service, cfg *config.Config) Report {
	queries := []func() (series.Frame, error){
		func() (series.Frame, error) { return svc.Summary(ctx) },
		func() (series.Frame, error) { return svc.NationParticipation(ctx, cfg.TopN) },
		func() (series.Frame, error) { return svc.ClubParticipation(ctx, cfg.TopN) },
		func() (series.Frame, error) { return svc.TopOverPerformers(ctx, metric.ByNation, cfg.TopN) },
		func() (series.Frame, error) { return svc.TopOverPerformers(ctx, metric.ByClub, cfg.TopN) },
		func() (series.Frame, error) { return svc.HeightWeight(ctx) },
		func() (series.Frame, error) { return svc.PositionDistribution(ctx) },
		func() (series.Frame, error) { return svc.AgeDistribution(ctx, cfg.AgeBinWidth) },
		func() (series.Frame, error) { return svc.ValueWage(ctx) },
		func() (series.Frame, error) { return svc.BestPlayers(ctx, cfg.TopN) },
		func() (series.Frame, error) { return svc.HighestPotential(ctx, cfg.TopN) },
	}
	if cfg.QueryPlayer != "" {
		queries = append(queries, func() (series.Frame, error) {
			return svc.SimilarPlayers(ctx, cfg.QueryPlayer, cfg.SimilarityK)
		})
	}

	frames := make([]series.Frame, len(queries))
	errs := make([]error, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q func() (series.Frame, error)) {
			defer wg.Done()
			frames[i], errs[i] = q()
		}(i, q)
	}
	wg.Wait()

	report := Report{GeneratedAt: time.Now().UTC(), Frames: make([]series.Frame, 0, len(frames))}
	for i, f := range frames {
		if errs[i] != nil {
			report.Errors = append(report.Errors, errs[i].Error())
			continue
		}
		report.Frames = append(report.Frames, f)
	}
	return report
}

// writeReport encodes the report as indented JSON to path, or to stdout
// when path is empty or "-".
func writeReport(path string, report Report) error {
	if path == "" || path == "-" {
		return encodeReport(os.Stdout, report)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := encodeReport(file, report); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func encodeReport(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
