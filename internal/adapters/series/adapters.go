package series

import (
	"github.com/okian/pitchstats/internal/domain/metric"
	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/internal/domain/similarity"
)

// FromCounts shapes a group-by count (participation, positions).
func FromCounts(metricName string, counts []metric.Count) Frame {
	f := newFrame(metricName,
		col("category", "Category", TypeString),
		col("count", "Players", TypeInt),
	)
	for _, c := range counts {
		f.Rows = append(f.Rows, []any{c.Category, c.Count})
	}
	return f
}

// FromPoints shapes a scatter series. xKey and yKey name the axes; unknown
// coordinates become nil cells.
func FromPoints(metricName, xKey, yKey string, pts []metric.Point) Frame {
	f := newFrame(metricName,
		col("name", "Player", TypeString),
		col(xKey, xKey, TypeFloat),
		col(yKey, yKey, TypeFloat),
	)
	for _, p := range pts {
		f.Rows = append(f.Rows, []any{p.Name, knownOrNil(p.X, p.XKnown), knownOrNil(p.Y, p.YKnown)})
	}
	return f
}

// FromHeightWeight shapes metric.HeightWeight output.
func FromHeightWeight(pts []metric.Point, correlation float64) Frame {
	f := FromPoints(MetricHeightWeight, "height_cm", "weight_kg", pts)
	f.Meta = map[string]any{"correlation": correlation}
	return f
}

// FromValueWage shapes metric.ValueWage output.
func FromValueWage(pts []metric.Point) Frame {
	return FromPoints(MetricValueWage, "value", "wage", pts)
}

// FromPerformers shapes a flat list of over-performers.
func FromPerformers(metricName string, ps []metric.Performer) Frame {
	f := newFrame(metricName, performerColumns()...)
	for _, p := range ps {
		f.Rows = append(f.Rows, performerRow(p))
	}
	return f
}

// FromGroupPerformance flattens per-group rankings, group by group.
func FromGroupPerformance(by metric.GroupKey, groups []metric.GroupPerformance) Frame {
	f := newFrame(MetricOverPerformers, performerColumns()...)
	f.Meta = map[string]any{"group_by": by.String()}
	for _, g := range groups {
		for _, p := range g.Members {
			f.Rows = append(f.Rows, performerRow(p))
		}
	}
	return f
}

func performerColumns() []Column {
	return []Column{
		col("group", "Group", TypeString),
		col("name", "Player", TypeString),
		col("overall", "Overall", TypeInt),
		col("baseline", "Group mean", TypeFloat),
		col("margin", "Margin", TypeFloat),
	}
}

func performerRow(p metric.Performer) []any {
	return []any{p.Group, p.Name, p.Overall, p.Baseline, p.Margin}
}

// FromHistogram shapes an age histogram. The unknown tally goes to Meta.
func FromHistogram(h metric.AgeHistogram) Frame {
	f := newFrame(MetricAgeDistribution,
		col("start", "From", TypeInt),
		col("end", "To (exclusive)", TypeInt),
		col("count", "Players", TypeInt),
	)
	f.Meta = map[string]any{"width": h.Width, "unknown": h.Unknown}
	for _, b := range h.Bins {
		f.Rows = append(f.Rows, []any{b.Start, b.End, b.Count})
	}
	return f
}

// FromRanked shapes a leaderboard.
func FromRanked(metricName string, rs []metric.Ranked) Frame {
	f := newFrame(metricName,
		col("rank", "#", TypeInt),
		col("name", "Player", TypeString),
		col("nationality", "Nationality", TypeString),
		col("club", "Club", TypeString),
		col("position", "Position", TypeString),
		col("age", "Age", TypeInt),
		col("overall", "Overall", TypeInt),
		col("potential", "Potential", TypeInt),
		col("value", "Value", TypeFloat),
		col("wage", "Wage", TypeFloat),
	)
	for _, r := range rs {
		f.Rows = append(f.Rows, []any{
			r.Rank, r.Name, r.Nationality, r.Club, r.Position,
			r.Age, r.Overall, r.Potential, r.MarketValue, r.Wage,
		})
	}
	return f
}

// FromSimilarity shapes a similarity result. Columns are rank, name,
// distance, then one column per attribute in the result's attribute order;
// unknown attribute values are nil.
func FromSimilarity(res similarity.Result) Frame {
	cols := []Column{
		col("rank", "#", TypeInt),
		col("name", "Player", TypeString),
		col("distance", "Distance", TypeFloat),
	}
	for _, a := range res.Attributes {
		cols = append(cols, col(a.String(), a.String(), TypeFloat))
	}
	f := newFrame(MetricSimilarPlayers, cols...)
	f.Meta = map[string]any{"anchor": res.Anchor.Name, "metric": "euclidean_zscore"}
	for i, m := range res.Matches {
		row := []any{i + 1, m.Name, m.Distance}
		row = append(row, attributeCells(res.Attributes, m)...)
		f.Rows = append(f.Rows, row)
	}
	return f
}

func attributeCells(attrs []player.Attribute, m similarity.Match) []any {
	cells := make([]any, len(attrs))
	for i, a := range attrs {
		if v, ok := m.Values[a]; ok {
			cells[i] = v
		}
	}
	return cells
}

// FromSummary shapes headline figures as a single-row frame.
func FromSummary(s metric.Summary) Frame {
	f := newFrame(MetricSummary,
		col("players", "Players", TypeInt),
		col("nations", "Nations", TypeInt),
		col("clubs", "Clubs", TypeInt),
		col("mean_overall", "Mean overall", TypeFloat),
		col("mean_age", "Mean age", TypeFloat),
	)
	f.Rows = append(f.Rows, []any{s.Players, s.Nations, s.Clubs, s.MeanOverall, s.MeanAge})
	return f
}

func knownOrNil(v float64, known bool) any {
	if !known {
		return nil
	}
	return v
}
