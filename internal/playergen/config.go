package playergen

import "time"

// Config holds configuration for a generation run.
type Config struct {
	Players    int    // Number of players to generate
	Seed       uint64 // Seed for the deterministic generator
	Workers    int    // Number of concurrent workers
	OutputFile string // Destination CSV file
	Verify     bool   // Reload the file and check it after writing
	Verbose    bool   // Log a sample of the generated players
}

// Stats holds run statistics.
type Stats struct {
	PlayersGenerated int
	BytesWritten     int64
	RowsVerified     int
	Sampled          int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
