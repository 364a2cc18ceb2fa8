package playergen

import "os"

// ShowHelp prints usage information for the generator tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Player Dataset Generator
========================

Writes a synthetic, reproducible players CSV for local runs and benchmarks.

Usage:
  go run ./cmd/gen-players [options]

Options:
  -players int
        Number of players to generate (default 20000)
  -seed uint
        Generator seed (default 1)
  -workers int
        Number of concurrent workers (default CPU cores)
  -output string
        Output CSV file (default: players_TIMESTAMP.csv)
  -verify
        Reload the written file through the dataset loader
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/gen-players -players 50000 -output data/players.csv -verify
`)
}
