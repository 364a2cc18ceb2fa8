// Package metric computes the derived aggregates shown on the dashboard.
//
// Every function is a pure read of a *player.Table: nothing is cached, the
// table is never modified, and calls are safe from concurrent goroutines.
// Degenerate input (empty table, single-member group, unknown cells) yields
// empty or zero-valued results rather than errors.
package metric

import "github.com/okian/pitchstats/internal/domain/player"

// GroupKey selects the field over-performance is grouped by.
type GroupKey int

// Supported groupings.
const (
	ByNation GroupKey = iota
	ByClub
)

// String returns the grouping name.
func (k GroupKey) String() string {
	if k == ByClub {
		return "club"
	}
	return "nation"
}

func (k GroupKey) of(r *player.Record) string {
	if k == ByClub {
		return r.ClubOrUnknown()
	}
	return r.NationalityOrUnknown()
}

// Count is one category of a group-by count.
type Count struct {
	Category string
	Count    int
}

// Point is one scatter sample. X or Y is only meaningful when the matching
// Known flag is set.
type Point struct {
	Index  int
	Name   string
	X      float64
	Y      float64
	XKnown bool
	YKnown bool
}

// Complete reports whether both coordinates are known.
func (p Point) Complete() bool { return p.XKnown && p.YKnown }

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
