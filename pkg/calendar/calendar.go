package calendar

import (
	"strings"
	"time"
)

// Unit is a calendar unit. Units can be combined into a set with |.
type Unit uint

const (
	Year Unit = 1 << iota
	Month
	Day
	Hour
	Minute
	Second
	Nanosecond
)

var unitNames = []struct {
	unit Unit
	name string
}{
	{Year, "year"},
	{Month, "month"},
	{Day, "day"},
	{Hour, "hour"},
	{Minute, "minute"},
	{Second, "second"},
	{Nanosecond, "nanosecond"},
}

// String returns the unit name, or a "|"-joined list for a unit set.
func (u Unit) String() string {
	var parts []string
	for _, n := range unitNames {
		if u&n.unit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// DateComponents identifies a calendar date and wall-clock time.
// A zero Month or Day means the first month or day.
type DateComponents struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// Components is the result of decomposing the span between two instants.
// Only the fields for the requested units are populated. When the end is
// before the start every populated field is negative or zero.
type Components struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// Calendar is the calendar system the age calculation is resolved against.
type Calendar interface {
	// Date returns the instant for the given components in the calendar's
	// location. Returns false if the components cannot be represented.
	Date(c DateComponents) (time.Time, bool)

	// Components decomposes the span from -> to into the requested units,
	// largest unit first. Each unit holds the remainder after the larger ones.
	Components(units Unit, from, to time.Time) Components

	// Range returns how many of unit fit in the within unit containing at.
	// Returns false for unsupported unit pairs or unresolvable boundaries.
	Range(unit, within Unit, at time.Time) (int, bool)

	// Location returns the time zone civil dates are resolved in.
	Location() *time.Location
}
