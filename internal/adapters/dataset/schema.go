package dataset

import (
	"strings"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Canonical column names.
const (
	colID          = "id"
	colName        = "name"
	colNationality = "nationality"
	colClub        = "club"
	colAge         = "age"
	colHeight      = "height_cm"
	colWeight      = "weight_kg"
	colPosition    = "position"
	colOverall     = "overall"
	colPotential   = "potential"
	colValue       = "value"
	colWage        = "wage"
)

const defaultSQLiteTable = "players"

// requiredColumns lists the columns every source must provide, in error order.
var requiredColumns = []string{
	colName, colNationality, colClub, colAge, colHeight, colWeight,
	colPosition, colOverall, colPotential, colValue, colWage,
}

var defaultAliases = map[string]string{
	"height":              colHeight,
	"weight":              colWeight,
	"positions":           colPosition,
	"preferred_positions": colPosition,
	"player_positions":    colPosition,
	"short_name":          colName,
	"market_value":        colValue,
	"value_eur":           colValue,
	"wage_eur":            colWage,
	"nation":              colNationality,
	"player_id":           colID,
}

type loader struct {
	source      string
	sqliteTable string
	aliases     map[string]string
}

func newLoader(source string, opts ...Option) *loader {
	l := &loader{
		source:      source,
		sqliteTable: defaultSQLiteTable,
		aliases:     make(map[string]string, len(defaultAliases)),
	}
	for k, v := range defaultAliases {
		l.aliases[k] = v
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// columnIndex maps canonical column names to positions in a source row.
type columnIndex map[string]int

// resolve builds the column index for headers and reports missing required
// columns. The first header that maps to a canonical column wins.
func (l *loader) resolve(headers []string) (columnIndex, error) {
	idx := make(columnIndex, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if alias, ok := l.aliases[key]; ok {
			key = alias
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &player.DataLoadError{Source: l.source, Missing: missing}
	}
	return idx, nil
}

// record coerces one source row into a player.Record.
func (idx columnIndex) record(row []string) player.Record {
	cell := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	r := player.Record{
		ID:          cell(colID),
		Name:        cell(colName),
		Nationality: cell(colNationality),
		Club:        cell(colClub),
		Positions:   splitPositions(cell(colPosition)),
	}

	setInt(&r, player.Age, cell(colAge), 0, maxAge)
	setInt(&r, player.Overall, cell(colOverall), 0, maxRating)
	setInt(&r, player.Potential, cell(colPotential), 0, maxRating)
	setMeasure(&r, player.HeightCM, cell(colHeight), "cm")
	setMeasure(&r, player.WeightKG, cell(colWeight), "kg")
	setMoney(&r, player.MarketValue, cell(colValue))
	setMoney(&r, player.Wage, cell(colWage))
	return r
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}
