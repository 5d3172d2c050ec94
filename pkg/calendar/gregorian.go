package calendar

import (
	"math"
	"time"
)

// Gregorian implements Calendar over Go's proleptic Gregorian calendar.
// Civil dates are resolved in a fixed location, so days around DST
// transitions are 23 or 25 hours long. Minutes that end in a leap second
// are 61 seconds long according to the configured table.
type Gregorian struct {
	loc  *time.Location
	leap LeapSeconds
}

// Option configures a Gregorian calendar.
type Option func(*Gregorian)

// WithLocation sets the time zone civil dates are resolved in.
// Default: time.Local
func WithLocation(loc *time.Location) Option {
	return func(g *Gregorian) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// WithLeapSeconds sets the leap second table.
// Default: IERSLeapSeconds()
func WithLeapSeconds(ls LeapSeconds) Option {
	return func(g *Gregorian) {
		g.leap = ls
	}
}

// NewGregorian creates a Gregorian calendar.
func NewGregorian(opts ...Option) *Gregorian {
	g := &Gregorian{
		loc:  time.Local,
		leap: IERSLeapSeconds(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Location returns the time zone civil dates are resolved in.
func (g *Gregorian) Location() *time.Location {
	return g.loc
}

// LeapSeconds returns the leap second table in use.
func (g *Gregorian) LeapSeconds() LeapSeconds {
	return g.leap
}

// Date returns the instant for c. Out-of-range fields are not normalized:
// February 30th or a year that overflows time.Time yields false.
func (g *Gregorian) Date(c DateComponents) (time.Time, bool) {
	month, day := c.Month, c.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	if month < 1 || month > 12 {
		return time.Time{}, false
	}

	t := time.Date(c.Year, time.Month(month), day, c.Hour, c.Minute, c.Second, c.Nanosecond, g.loc)
	y, m, d := t.Date()
	if y != c.Year || int(m) != month || d != day {
		return time.Time{}, false
	}
	return t, true
}

// Components decomposes from -> to. Years and months are stepped on the
// calendar from the start date, clamping to the last day of shorter months
// (Feb 29 + 1 year is Feb 28). Days are stepped on the wall clock, so a
// 23-hour DST day still counts as one day. Hours and smaller units are
// taken from the elapsed time that remains. When to is before from the
// steps run backward from from and every field is negative or zero.
func (g *Gregorian) Components(units Unit, from, to time.Time) Components {
	from, to = from.In(g.loc), to.In(g.loc)

	step := 1
	if to.Before(from) {
		step = -1
	}
	// overshoots reports whether t lies past to in the stepping direction.
	overshoots := func(t time.Time) bool {
		if step > 0 {
			return t.After(to)
		}
		return t.Before(to)
	}

	var c Components
	anchor := from

	if units&(Year|Month) != 0 {
		total := monthsBetween(from, to, step, overshoots)
		months := 0
		if units&Year != 0 {
			c.Year = total / 12
			months = c.Year * 12
		}
		if units&Month != 0 {
			c.Month = total - months
			months = total
		}
		anchor = addMonths(from, months)
	}

	if units&Day != 0 {
		d := civilDay(to) - civilDay(anchor)
		for d != 0 && overshoots(addDays(anchor, d)) {
			d -= step
		}
		for !overshoots(addDays(anchor, d+step)) {
			d += step
		}
		c.Day = d
		anchor = addDays(anchor, d)
	}

	rem := to.Sub(anchor)
	if units&Hour != 0 {
		c.Hour = int(rem / time.Hour)
		rem -= time.Duration(c.Hour) * time.Hour
	}
	if units&Minute != 0 {
		c.Minute = int(rem / time.Minute)
		rem -= time.Duration(c.Minute) * time.Minute
	}
	if units&Second != 0 {
		c.Second = int(rem / time.Second)
		rem -= time.Duration(c.Second) * time.Second
	}
	if units&Nanosecond != 0 {
		c.Nanosecond = int(rem)
	}
	return c
}

// Range returns how many of unit fit in the within unit containing at.
//
// Supported pairs: month/day in year, day in month, hour/minute/second in
// day, minute in hour, second in minute and nanosecond in second.
func (g *Gregorian) Range(unit, within Unit, at time.Time) (int, bool) {
	at = at.In(g.loc)

	switch within {
	case Year:
		switch unit {
		case Month:
			return 12, true
		case Day:
			return DaysInYearAt(g, at)
		}
	case Month:
		if unit == Day {
			y, m, _ := at.Date()
			return daysInMonth(y, m), true
		}
	case Day:
		y, m, d := at.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, g.loc)
		end := time.Date(y, m, d+1, 0, 0, 0, 0, g.loc)
		length := end.Sub(start)
		switch unit {
		case Hour:
			return int(math.Ceil(length.Hours())), true
		case Minute:
			return int(math.Ceil(length.Minutes())), true
		case Second:
			return int(length/time.Second) + g.leap.Between(start, end), true
		}
	case Hour:
		if unit == Minute {
			return 60, true
		}
	case Minute:
		if unit == Second {
			if g.leap.InMinute(at) {
				return 61, true
			}
			return 60, true
		}
	case Second:
		if unit == Nanosecond {
			return int(time.Second / time.Nanosecond), true
		}
	}
	return 0, false
}

// monthsBetween returns the whole months from from towards to, stepping by
// step, that do not overshoot to.
func monthsBetween(from, to time.Time, step int, overshoots func(time.Time) bool) int {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	for n != 0 && overshoots(addMonths(from, n)) {
		n -= step
	}
	for !overshoots(addMonths(from, n+step)) {
		n += step
	}
	return n
}

// addMonths steps t by n calendar months keeping the wall clock, clamping
// the day to the length of the target month.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ny := y + total/12
	nm := total % 12
	if nm < 0 {
		nm += 12
		ny--
	}
	month := time.Month(nm + 1)
	if dim := daysInMonth(ny, month); d > dim {
		d = dim
	}
	return time.Date(ny, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// civilDay numbers t's calendar date in its own location.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(floorDiv(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), 86400))
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
