// Package player contains the player table shared by every analytics query.
package player

import "strings"

// UnknownCategory labels records whose grouping field is empty.
const UnknownCategory = "Unknown"

// Record is one row of the player dataset.
//
// Numeric fields carry a known/unknown flag; read them through Known or
// Value when the distinction matters. A zero value with Known(a) == false
// means the source cell was empty or could not be coerced.
type Record struct {
	ID          string
	Name        string
	Nationality string
	Club        string
	Positions   []string

	Age         int
	HeightCM    float64
	WeightKG    float64
	Overall     int
	Potential   int
	MarketValue float64
	Wage        float64

	unknown uint16
}

// Known reports whether the attribute was present in the source.
func (r Record) Known(a Attribute) bool {
	if !a.valid() {
		return false
	}
	return r.unknown&a.bit() == 0
}

// MarkUnknown flags an attribute as missing and zeroes its value.
func (r *Record) MarkUnknown(a Attribute) {
	if !a.valid() {
		return
	}
	r.unknown |= a.bit()
	r.set(a, 0)
}

// Set stores v for attribute a and marks it known.
func (r *Record) Set(a Attribute, v float64) {
	if !a.valid() {
		return
	}
	r.unknown &^= a.bit()
	r.set(a, v)
}

func (r *Record) set(a Attribute, v float64) {
	switch a {
	case Overall:
		r.Overall = int(v)
	case Potential:
		r.Potential = int(v)
	case Age:
		r.Age = int(v)
	case HeightCM:
		r.HeightCM = v
	case WeightKG:
		r.WeightKG = v
	case MarketValue:
		r.MarketValue = v
	case Wage:
		r.Wage = v
	}
}

// Value returns the attribute as float64 and whether it is known.
func (r Record) Value(a Attribute) (float64, bool) {
	var v float64
	switch a {
	case Overall:
		v = float64(r.Overall)
	case Potential:
		v = float64(r.Potential)
	case Age:
		v = float64(r.Age)
	case HeightCM:
		v = r.HeightCM
	case WeightKG:
		v = r.WeightKG
	case MarketValue:
		v = r.MarketValue
	case Wage:
		v = r.Wage
	default:
		return 0, false
	}
	return v, r.Known(a)
}

// PrimaryPosition returns the first listed position or UnknownCategory.
func (r Record) PrimaryPosition() string {
	for _, p := range r.Positions {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return UnknownCategory
}

// NationalityOrUnknown returns the nationality, or UnknownCategory when blank.
func (r Record) NationalityOrUnknown() string { return orUnknown(r.Nationality) }

// ClubOrUnknown returns the club, or UnknownCategory when blank.
func (r Record) ClubOrUnknown() string { return orUnknown(r.Club) }

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return UnknownCategory
	}
	return s
}

func (r Record) clone() Record {
	c := r
	if r.Positions != nil {
		c.Positions = append([]string(nil), r.Positions...)
	}
	return c
}
