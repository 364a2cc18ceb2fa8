package metric

import (
	"gonum.org/v1/gonum/stat"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Summary holds headline figures for the dataset.
type Summary struct {
	Players     int
	Nations     int
	Clubs       int
	MeanOverall float64
	MeanAge     float64
}

// Summarize computes headline figures. Means ignore unknown cells and are 0
// when nothing is known.
func Summarize(t *player.Table) Summary {
	nations := make(map[string]struct{})
	clubs := make(map[string]struct{})
	var overall, age []float64
	t.Each(func(_ int, r *player.Record) {
		nations[r.NationalityOrUnknown()] = struct{}{}
		clubs[r.ClubOrUnknown()] = struct{}{}
		if v, ok := r.Value(player.Overall); ok {
			overall = append(overall, v)
		}
		if v, ok := r.Value(player.Age); ok {
			age = append(age, v)
		}
	})
	return Summary{
		Players:     t.Len(),
		Nations:     len(nations),
		Clubs:       len(clubs),
		MeanOverall: mean(overall),
		MeanAge:     mean(age),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
