package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// PrecisionLevel controls how many decimal places of the age are shown.
// The integer values are the persisted representation.
type PrecisionLevel int

const (
	Light PrecisionLevel = iota
	Moderate
	Terrifying
)

// DefaultPrecisionLevel is used when no valid level has been persisted.
const DefaultPrecisionLevel = Terrifying

var precisionLevels = [...]struct {
	name          string
	decimalPlaces int
}{
	Light:      {"light", 7},
	Moderate:   {"moderate", 8},
	Terrifying: {"terrifying", 9},
}

// PrecisionLevels returns every level in ascending order.
func PrecisionLevels() []PrecisionLevel {
	return []PrecisionLevel{Light, Moderate, Terrifying}
}

// Valid reports whether p is one of the defined levels.
func (p PrecisionLevel) Valid() bool {
	return p >= Light && p <= Terrifying
}

// DecimalPlaces returns the number of decimal places shown at p.
// An invalid level resolves like DefaultPrecisionLevel.
func (p PrecisionLevel) DecimalPlaces() int {
	if !p.Valid() {
		p = DefaultPrecisionLevel
	}
	return precisionLevels[p].decimalPlaces
}

// String returns the lowercase level name.
func (p PrecisionLevel) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PrecisionLevel(%d)", int(p))
	}
	return precisionLevels[p].name
}

// PrecisionLevelFromInt maps a persisted integer to a level.
func PrecisionLevelFromInt(i int) (PrecisionLevel, bool) {
	p := PrecisionLevel(i)
	return p, p.Valid()
}

// ParsePrecisionLevel accepts a level name (case-insensitive) or its
// persisted integer.
func ParsePrecisionLevel(s string) (PrecisionLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range PrecisionLevels() {
		if s == p.String() {
			return p, nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil {
		if p, ok := PrecisionLevelFromInt(i); ok {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want light, moderate, terrifying, 0, 1 or 2)", ErrInvalidPrecisionLevel, s)
}
