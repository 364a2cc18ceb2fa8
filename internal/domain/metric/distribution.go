package metric

import (
	"sort"

	"github.com/okian/pitchstats/internal/domain/player"
)

// PositionDistribution counts players by primary position, largest first,
// with ties in alphabetical order.
func PositionDistribution(t *player.Table) []Count {
	counts := countBy(t, (*player.Record).PrimaryPosition)
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	return counts
}

// Bin is one histogram bucket covering ages in [Start, End).
type Bin struct {
	Start int
	End   int
	Count int
}

// AgeHistogram is a gap-free age distribution. Unknown counts records whose
// age is missing, so the bin counts plus Unknown equal the table size.
type AgeHistogram struct {
	Width   int
	Bins    []Bin
	Unknown int
}

// AgeDistribution buckets ages into fixed-width bins from the youngest to the
// oldest observed age. Empty bins are kept with a zero count. A width below 1
// is treated as 1.
func AgeDistribution(t *player.Table, width int) AgeHistogram {
	if width < 1 {
		width = 1
	}
	h := AgeHistogram{Width: width}

	lo, hi, seen := 0, 0, false
	t.Each(func(_ int, r *player.Record) {
		if !r.Known(player.Age) {
			h.Unknown++
			return
		}
		if !seen || r.Age < lo {
			lo = r.Age
		}
		if !seen || r.Age > hi {
			hi = r.Age
		}
		seen = true
	})
	if !seen {
		return h
	}

	n := (hi-lo)/width + 1
	h.Bins = make([]Bin, n)
	for i := range h.Bins {
		start := lo + i*width
		h.Bins[i] = Bin{Start: start, End: start + width}
	}
	t.Each(func(_ int, r *player.Record) {
		if r.Known(player.Age) {
			h.Bins[(r.Age-lo)/width].Count++
		}
	})
	return h
}
