// Package series shapes analytics results into column/row frames that the
// presentation layer binds to charts. Column keys are fixed per metric so a
// consumer can bind by name across calls.
package series

// Column value types.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
)

// Metric names used as Frame.Metric.
const (
	MetricNationParticipation = "nation_participation"
	MetricClubParticipation   = "club_participation"
	MetricOverPerformers      = "over_performers"
	MetricTopOverPerformers   = "top_over_performers"
	MetricHeightWeight        = "height_weight"
	MetricPositions           = "position_distribution"
	MetricAgeDistribution     = "age_distribution"
	MetricValueWage           = "value_wage"
	MetricBestPlayers         = "best_players"
	MetricHighestPotential    = "highest_potential"
	MetricSimilarPlayers      = "similar_players"
	MetricSummary             = "summary"
)

// Column describes one field of every row in a Frame.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Frame is an ordered table of rows; Rows[i][j] holds the value of
// Columns[j]. A nil cell means the value is unknown.
type Frame struct {
	Metric  string         `json:"metric"`
	Columns []Column       `json:"columns"`
	Rows    [][]any        `json:"rows"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Keys returns the column keys in order.
func (f Frame) Keys() []string {
	keys := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Records returns the rows as maps keyed by column key.
func (f Frame) Records() []map[string]any {
	out := make([]map[string]any, len(f.Rows))
	for i, row := range f.Rows {
		m := make(map[string]any, len(f.Columns))
		for j, c := range f.Columns {
			if j < len(row) {
				m[c.Key] = row[j]
			}
		}
		out[i] = m
	}
	return out
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.Rows) }

func newFrame(metric string, cols ...Column) Frame {
	return Frame{Metric: metric, Columns: cols, Rows: [][]any{}}
}

func col(key, label, typ string) Column { return Column{Key: key, Label: label, Type: typ} }
