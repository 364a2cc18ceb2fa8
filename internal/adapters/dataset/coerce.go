package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/pitchstats/internal/domain/player"
)

const (
	maxRating = 99
	maxAge    = 80
)

var missingMarkers = map[string]bool{
	"": true, "na": true, "n/a": true, "nan": true, "null": true, "none": true, "-": true,
}

// parseNumber coerces a numeric cell. ok is false for empty, missing-marker,
// and unparsable cells, as well as NaN and infinities.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if missingMarkers[strings.ToLower(s)] {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseMeasure strips an optional unit suffix such as "cm" before parsing.
func parseMeasure(s, unit string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.ToLower(s), unit)
	return parseNumber(s)
}

// parseMoney accepts plain numbers and dataset-style amounts like "€110.5M"
// or "£565K".
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"€", "£", "$"} {
		s = strings.TrimPrefix(s, sym)
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		mult, s = 1e6, s[:len(s)-1]
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		mult, s = 1e3, s[:len(s)-1]
	}
	v, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return v * mult, true
}

func splitPositions(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '|'
	})
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToUpper(f))
	}
	return out
}

func setInt(r *player.Record, a player.Attribute, cell string, lo, hi int) {
	v, ok := parseNumber(cell)
	if !ok || v != math.Trunc(v) || v < float64(lo) || v > float64(hi) {
		r.MarkUnknown(a)
		return
	}
	r.Set(a, v)
}

func setMeasure(r *player.Record, a player.Attribute, cell, unit string) {
	v, ok := parseMeasure(cell, unit)
	if !ok || v <= 0 {
		r.MarkUnknown(a)
		return
	}
	r.Set(a, v)
}

func setMoney(r *player.Record, a player.Attribute, cell string) {
	v, ok := parseMoney(cell)
	if !ok || v < 0 {
		r.MarkUnknown(a)
		return
	}
	r.Set(a, v)
}
