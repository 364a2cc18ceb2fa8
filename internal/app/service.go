// Package service publishes the player table once and exposes every
// analytics query as a request/response call returning a series.Frame.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pitchstats/internal/adapters/dataset"
	"github.com/okian/pitchstats/internal/adapters/series"
	"github.com/okian/pitchstats/internal/domain/metric"
	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/internal/domain/similarity"
	"github.com/okian/pitchstats/pkg/logger"
	"github.com/okian/pitchstats/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// snapshot is what gets published: the table plus the similarity index for
// the default attribute set.
type snapshot struct {
	table  *player.Table
	index  *similarity.Index
	source string
}

// Service is the read-only analytics facade. After a successful Load or
// Publish every method is safe for concurrent use without locking.
type Service struct {
	publishOnce sync.Once
	current     atomic.Pointer[snapshot]

	load    LoadFunc
	attrs   []player.Attribute
	logger  logger.Logger
	metrics *metrics.Manager
}

// New constructs a Service. Call Load or Publish before querying.
func New(opts ...Option) *Service {
	s := &Service{
		load: func(ctx context.Context, source string) (*player.Table, error) {
			return dataset.LoadFile(ctx, source)
		},
		attrs:   player.DefaultAttributes,
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the table from source and publishes it. Only the first
// successful Load or Publish takes effect; later calls return
// ErrAlreadyLoaded. A failed load may be retried by the caller.
func (s *Service) Load(ctx context.Context, source string) error {
	if s.Ready() {
		return ErrAlreadyLoaded
	}
	start := time.Now()
	t, err := s.load(ctx, source)
	if err != nil {
		s.metrics.RecordDatasetLoadError()
		s.logger.Error(ctx, "dataset load failed", logger.String("source", source), logger.Error(err))
		return err
	}
	if err := s.publish(ctx, t, source); err != nil {
		return err
	}
	elapsed := time.Since(start)
	s.metrics.RecordDatasetLoad(t.Len(), float64(elapsed.Nanoseconds())/nanosecondsPerMillisecond)
	s.logger.Info(ctx, "dataset loaded",
		logger.String("source", source),
		logger.Int("rows", t.Len()),
		logger.Duration("elapsed", elapsed),
	)
	return nil
}

// Publish installs an already-built table.
func (s *Service) Publish(ctx context.Context, t *player.Table) error {
	if err := s.publish(ctx, t, "memory"); err != nil {
		return err
	}
	s.metrics.RecordDatasetLoad(t.Len(), 0)
	return nil
}

func (s *Service) publish(_ context.Context, t *player.Table, source string) error {
	if t == nil {
		t = player.NewTable(nil)
	}
	ix, err := similarity.NewIndex(t, s.attrs...)
	if err != nil {
		return err
	}
	published := false
	s.publishOnce.Do(func() {
		s.current.Store(&snapshot{table: t, index: ix, source: source})
		published = true
	})
	if !published {
		return ErrAlreadyLoaded
	}
	return nil
}

// Ready reports whether a table has been published.
func (s *Service) Ready() bool { return s.current.Load() != nil }

// Table returns the published table.
func (s *Service) Table() (*player.Table, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap.table, nil
}

// NationParticipation returns player counts per nationality.
func (s *Service) NationParticipation(ctx context.Context, topN int) (series.Frame, error) {
	return s.run(ctx, series.MetricNationParticipation, func(snap *snapshot) (series.Frame, error) {
		return series.FromCounts(series.MetricNationParticipation, metric.NationParticipation(snap.table, topN)), nil
	})
}

// ClubParticipation returns player counts per club.
func (s *Service) ClubParticipation(ctx context.Context, topN int) (series.Frame, error) {
	return s.run(ctx, series.MetricClubParticipation, func(snap *snapshot) (series.Frame, error) {
		return series.FromCounts(series.MetricClubParticipation, metric.ClubParticipation(snap.table, topN)), nil
	})
}

// OverPerformers returns every group's members ranked by margin over the
// group mean overall.
func (s *Service) OverPerformers(ctx context.Context, by metric.GroupKey) (series.Frame, error) {
	return s.run(ctx, series.MetricOverPerformers, func(snap *snapshot) (series.Frame, error) {
		return series.FromGroupPerformance(by, metric.OverPerformers(snap.table, by)), nil
	})
}

// TopOverPerformers returns the best over-performer of each group.
func (s *Service) TopOverPerformers(ctx context.Context, by metric.GroupKey, topN int) (series.Frame, error) {
	return s.run(ctx, series.MetricTopOverPerformers, func(snap *snapshot) (series.Frame, error) {
		f := series.FromPerformers(series.MetricTopOverPerformers, metric.TopOverPerformers(snap.table, by, topN))
		f.Meta = map[string]any{"group_by": by.String()}
		return f, nil
	})
}

// HeightWeight returns the height/weight scatter with its correlation.
func (s *Service) HeightWeight(ctx context.Context) (series.Frame, error) {
	return s.run(ctx, series.MetricHeightWeight, func(snap *snapshot) (series.Frame, error) {
		return series.FromHeightWeight(metric.HeightWeight(snap.table), metric.HeightWeightCorrelation(snap.table)), nil
	})
}

// PositionDistribution returns player counts per primary position.
func (s *Service) PositionDistribution(ctx context.Context) (series.Frame, error) {
	return s.run(ctx, series.MetricPositions, func(snap *snapshot) (series.Frame, error) {
		return series.FromCounts(series.MetricPositions, metric.PositionDistribution(snap.table)), nil
	})
}

// AgeDistribution returns the age histogram.
func (s *Service) AgeDistribution(ctx context.Context, width int) (series.Frame, error) {
	return s.run(ctx, series.MetricAgeDistribution, func(snap *snapshot) (series.Frame, error) {
		return series.FromHistogram(metric.AgeDistribution(snap.table, width)), nil
	})
}

// ValueWage returns the market value/wage scatter.
func (s *Service) ValueWage(ctx context.Context) (series.Frame, error) {
	return s.run(ctx, series.MetricValueWage, func(snap *snapshot) (series.Frame, error) {
		return series.FromValueWage(metric.ValueWage(snap.table)), nil
	})
}

// BestPlayers returns the top n players by overall.
func (s *Service) BestPlayers(ctx context.Context, n int) (series.Frame, error) {
	return s.run(ctx, series.MetricBestPlayers, func(snap *snapshot) (series.Frame, error) {
		return series.FromRanked(series.MetricBestPlayers, metric.BestPlayers(snap.table, n)), nil
	})
}

// HighestPotential returns the top n players by potential.
func (s *Service) HighestPotential(ctx context.Context, n int) (series.Frame, error) {
	return s.run(ctx, series.MetricHighestPotential, func(snap *snapshot) (series.Frame, error) {
		return series.FromRanked(series.MetricHighestPotential, metric.HighestPotential(snap.table, n)), nil
	})
}

// Summary returns headline dataset figures.
func (s *Service) Summary(ctx context.Context) (series.Frame, error) {
	return s.run(ctx, series.MetricSummary, func(snap *snapshot) (series.Frame, error) {
		f := series.FromSummary(metric.Summarize(snap.table))
		f.Meta = map[string]any{"source": snap.source}
		return f, nil
	})
}

// SimilarPlayers returns the k players nearest to the first player named
// name. attrs overrides the default attribute set by column name.
func (s *Service) SimilarPlayers(ctx context.Context, name string, k int, attrs ...string) (series.Frame, error) {
	return s.similar(ctx, k, attrs, func(ix *similarity.Index) (similarity.Result, error) {
		return ix.FindSimilar(name, k)
	})
}

// SimilarPlayersByID is SimilarPlayers keyed by record ID.
func (s *Service) SimilarPlayersByID(ctx context.Context, id string, k int, attrs ...string) (series.Frame, error) {
	return s.similar(ctx, k, attrs, func(ix *similarity.Index) (similarity.Result, error) {
		return ix.FindSimilarByID(id, k)
	})
}

func (s *Service) similar(ctx context.Context, k int, attrs []string, find func(*similarity.Index) (similarity.Result, error)) (series.Frame, error) {
	return s.run(ctx, series.MetricSimilarPlayers, func(snap *snapshot) (series.Frame, error) {
		ix := snap.index
		if len(attrs) > 0 {
			parsed, err := player.ParseAttributes(attrs)
			if err != nil {
				return series.Frame{}, err
			}
			if ix, err = similarity.NewIndex(snap.table, parsed...); err != nil {
				return series.Frame{}, err
			}
		}
		res, err := find(ix)
		if err != nil {
			return series.Frame{}, err
		}
		s.metrics.RecordSimilarityCandidates(snap.table.Len() - 1)
		return series.FromSimilarity(res), nil
	})
}

// run executes one query against the published snapshot with timing,
// metrics and error context.
func (s *Service) run(ctx context.Context, query string, fn func(*snapshot) (series.Frame, error)) (series.Frame, error) {
	queryID := uuid.NewString()
	start := time.Now()

	snap := s.current.Load()
	var (
		f   series.Frame
		err error
	)
	if snap == nil {
		err = ErrNotLoaded
	} else {
		f, err = fn(snap)
	}

	elapsedMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	if err != nil {
		s.metrics.RecordQuery(query, metrics.StatusError, elapsedMs)
		s.metrics.RecordQueryError(query, errorKind(err))
		s.logger.Warn(ctx, "query failed",
			logger.String("query", query),
			logger.String("query_id", queryID),
			logger.Error(err),
		)
		return series.Frame{}, &QueryError{Query: query, QueryID: queryID, Err: err}
	}
	s.metrics.RecordQuery(query, metrics.StatusOK, elapsedMs)
	s.logger.Debug(ctx, "query served",
		logger.String("query", query),
		logger.String("query_id", queryID),
		logger.Int("rows", f.Len()),
		logger.Float64("elapsed_ms", elapsedMs),
	)
	return f, nil
}

// Stats returns service state for diagnostics.
func (s *Service) Stats() map[string]any {
	stats := map[string]any{"ready": s.Ready()}
	if snap := s.current.Load(); snap != nil {
		stats["rows"] = snap.table.Len()
		stats["source"] = snap.source
		names := make([]string, 0, len(s.attrs))
		for _, a := range s.attrs {
			names = append(names, a.String())
		}
		stats["attributes"] = names
	}
	return stats
}
