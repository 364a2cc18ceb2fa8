package metric

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/pitchstats/internal/domain/player"
)

// HeightWeight returns (height_cm, weight_kg) for every record in table order.
// Unknown coordinates are flagged on the point, never dropped.
func HeightWeight(t *player.Table) []Point {
	return scatter(t, player.HeightCM, player.WeightKG)
}

// ValueWage returns (value, wage) for every record in table order, unscaled.
// Unknown coordinates are flagged as in HeightWeight.
func ValueWage(t *player.Table) []Point {
	return scatter(t, player.MarketValue, player.Wage)
}

// HeightWeightCorrelation returns the Pearson correlation of the
// HeightWeight points with both coordinates known. It is descriptive only and
// is 0 when fewer than two such points exist or either axis has no variance.
func HeightWeightCorrelation(t *player.Table) float64 {
	return correlation(HeightWeight(t))
}

func scatter(t *player.Table, x, y player.Attribute) []Point {
	pts := make([]Point, 0, t.Len())
	t.Each(func(i int, r *player.Record) {
		xv, xok := r.Value(x)
		yv, yok := r.Value(y)
		pts = append(pts, Point{Index: i, Name: r.Name, X: xv, Y: yv, XKnown: xok, YKnown: yok})
	})
	return pts
}

func correlation(pts []Point) float64 {
	xs := make([]float64, 0, len(pts))
	ys := make([]float64, 0, len(pts))
	for _, p := range pts {
		if p.Complete() {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	c := stat.Correlation(xs, ys, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}
