package playergen

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Header is the column order WriteCSV emits.
var Header = []string{ //nolint:gochecknoglobals // CSV layout
	"id", "name", "nationality", "club", "age", "height_cm", "weight_kg",
	"position", "overall", "potential", "value", "wage",
}

// WriteCSV writes records in the layout the dataset loader reads back.
// Unknown attributes are written as empty cells.
func WriteCSV(w io.Writer, records []player.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(row(&records[i])); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(r *player.Record) []string {
	cell := func(a player.Attribute) string {
		v, ok := r.Value(a)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return []string{
		r.ID,
		r.Name,
		r.Nationality,
		r.Club,
		cell(player.Age),
		cell(player.HeightCM),
		cell(player.WeightKG),
		strings.Join(r.Positions, " "),
		cell(player.Overall),
		cell(player.Potential),
		cell(player.MarketValue),
		cell(player.Wage),
	}
}
