package service

import (
	"context"

	"github.com/okian/pitchstats/internal/adapters/dataset"
	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/pkg/logger"
	"github.com/okian/pitchstats/pkg/metrics"
)

// LoadFunc loads a player table from a source such as a file path.
type LoadFunc func(ctx context.Context, source string) (*player.Table, error)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager queries are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithAttributes sets the default similarity attribute set.
func WithAttributes(attrs []player.Attribute) Option {
	return func(s *Service) {
		if player.ValidateAttributes(attrs) == nil {
			s.attrs = append([]player.Attribute(nil), attrs...)
		}
	}
}

// WithLoader replaces the dataset loader used by Load.
func WithLoader(fn LoadFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.load = fn
		}
	}
}

// WithDatasetOptions passes options to the default file loader.
func WithDatasetOptions(opts ...dataset.Option) Option {
	return func(s *Service) {
		s.load = func(ctx context.Context, source string) (*player.Table, error) {
			return dataset.LoadFile(ctx, source, opts...)
		}
	}
}
