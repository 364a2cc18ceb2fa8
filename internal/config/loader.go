package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Environment variable names.
const (
	EnvPrefix = "PITCH_"
	EnvConfig = "PITCH_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if PITCH_CONFIG is set
//  3. env (prefix PITCH_); list values are comma separated
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PITCH_TOP_N -> top_n. Underscores are kept to match the koanf tags.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if key == "similarity_attributes" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and attribute names.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DatasetPath) == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case c.TopN < 0:
		return fmt.Errorf("%w: top_n must not be negative", ErrInvalidConfig)
	case c.AgeBinWidth < 1:
		return fmt.Errorf("%w: age_bin_width must be at least 1", ErrInvalidConfig)
	case c.SimilarityK < 1:
		return fmt.Errorf("%w: similarity_k must be at least 1", ErrInvalidConfig)
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	if len(c.SimilarityAttributes) > 0 {
		if _, err := player.ParseAttributes(c.SimilarityAttributes); err != nil {
			return fmt.Errorf("%w: similarity_attributes: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Attributes resolves SimilarityAttributes; an empty list yields the
// defaults. Load has already validated the names.
func (c *Config) Attributes() []player.Attribute {
	if len(c.SimilarityAttributes) == 0 {
		return player.DefaultAttributes
	}
	attrs, err := player.ParseAttributes(c.SimilarityAttributes)
	if err != nil {
		return player.DefaultAttributes
	}
	return attrs
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
