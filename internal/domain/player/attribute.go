package player

import (
	"strconv"
	"strings"
)

// Attribute names a numeric column usable in similarity queries.
type Attribute uint8

// Numeric attributes of a Record.
const (
	Overall Attribute = iota + 1
	Potential
	Age
	HeightCM
	WeightKG
	MarketValue
	Wage
)

// DefaultAttributes is the full similarity attribute set in canonical order.
var DefaultAttributes = []Attribute{Overall, Potential, Age, HeightCM, WeightKG, MarketValue, Wage}

var attributeNames = map[Attribute]string{
	Overall:     "overall",
	Potential:   "potential",
	Age:         "age",
	HeightCM:    "height_cm",
	WeightKG:    "weight_kg",
	MarketValue: "value",
	Wage:        "wage",
}

// String returns the column name of the attribute.
func (a Attribute) String() string {
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return "attribute(" + strconv.Itoa(int(a)) + ")"
}

func (a Attribute) valid() bool { return a >= Overall && a <= Wage }

func (a Attribute) bit() uint16 { return 1 << a }

// ParseAttribute resolves a column name (case-insensitive) to an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for a, n := range attributeNames {
		if n == key {
			return a, nil
		}
	}
	return 0, &InvalidArgumentError{Param: "attribute", Value: name, Reason: "unknown attribute"}
}

// ParseAttributes resolves a list of names, rejecting unknown and repeated ones.
func ParseAttributes(names []string) ([]Attribute, error) {
	out := make([]Attribute, 0, len(names))
	for _, n := range names {
		a, err := ParseAttribute(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := ValidateAttributes(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateAttributes checks that attrs is non-empty, known, and free of repeats.
func ValidateAttributes(attrs []Attribute) error {
	if len(attrs) == 0 {
		return &InvalidArgumentError{Param: "attributes", Reason: "at least one attribute is required"}
	}
	seen := make(map[Attribute]bool, len(attrs))
	for _, a := range attrs {
		if !a.valid() {
			return &InvalidArgumentError{Param: "attribute", Value: a.String(), Reason: "unknown attribute"}
		}
		if seen[a] {
			return &InvalidArgumentError{Param: "attribute", Value: a.String(), Reason: "duplicate attribute"}
		}
		seen[a] = true
	}
	return nil
}
