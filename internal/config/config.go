// Package config defines process configuration and its layered loading.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and PITCH_* env vars.
// - Validation errors wrap ErrInvalidConfig; source errors wrap ErrLoadConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// DatasetPath is the CSV or SQLite file holding the player table.
	DatasetPath string `koanf:"dataset_path"`

	// DatasetTable names the table read from SQLite sources.
	DatasetTable string `koanf:"dataset_table"`

	// TopN truncates participation and ranking series.
	TopN int `koanf:"top_n"`

	// AgeBinWidth is the histogram bucket width in years.
	AgeBinWidth int `koanf:"age_bin_width"`

	// SimilarityK is the number of neighbours returned by similarity queries.
	SimilarityK int `koanf:"similarity_k"`

	// SimilarityAttributes lists the attribute columns compared by similarity
	// queries; empty means all numeric attributes.
	SimilarityAttributes []string `koanf:"similarity_attributes"`

	// QueryPlayer, when set, adds a similarity frame anchored at this name.
	QueryPlayer string `koanf:"query_player"`

	// OutputPath receives the JSON report; empty or "-" means stdout.
	OutputPath string `koanf:"output_path"`

	// MetricsTextfile, when set, receives Prometheus metrics after a run.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		DatasetPath:  "data/players.csv",
		DatasetTable: "players",
		TopN:         10,
		AgeBinWidth:  1,
		SimilarityK:  5,
		SimilarityAttributes: []string{
			"overall", "potential", "age", "height_cm", "weight_kg", "value", "wage",
		},
		OutputPath: "-",
	}
}
