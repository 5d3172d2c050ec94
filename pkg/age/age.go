// Package age computes a person's age in years as a real number.
//
// An age is the number of whole years lived, plus the days, seconds and
// nanoseconds lived since the last birthday, each expressed as a fraction
// of the unit that contains it right now. Unit lengths come from a
// calendar.Calendar and are resolved again on every call: a year may be
// 365 or 366 days, a day 23 to 25 hours and a minute 60 or 61 seconds.
//
//	calc := age.New(calendar.NewGregorian())
//	years := calc.FractionalAge(birthday, time.Now())
package age

import (
	"time"

	"github.com/motivation-app/motivation/pkg/calendar"
	"github.com/motivation-app/motivation/pkg/log"
)

// Fallback unit lengths, used when the calendar cannot resolve a range.
const (
	FallbackDaysInYear         = 365
	FallbackHoursInDay         = 24
	FallbackMinutesInHour      = 60
	FallbackSecondsInMinute    = 60
	FallbackSubsecondsInSecond = int(time.Second / time.Nanosecond)
)

// components requested from the calendar. Hours and minutes are left out:
// they roll into seconds, so a 61-second minute is still counted exactly.
const components = calendar.Year | calendar.Day | calendar.Second | calendar.Nanosecond

// UnitLengths holds the unit lengths in effect at one instant.
type UnitLengths struct {
	DaysInYear         int
	HoursInDay         int
	MinutesInHour      int
	SecondsInMinute    int
	SubsecondsInSecond int
}

// Calculator computes fractional ages against a calendar.
type Calculator struct {
	cal    calendar.Calendar
	logger log.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used to report calendar fallbacks.
func WithLogger(logger log.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// New creates a Calculator. A nil calendar means a Gregorian calendar in
// the local time zone.
func New(cal calendar.Calendar, opts ...Option) *Calculator {
	if cal == nil {
		cal = calendar.NewGregorian()
	}
	c := &Calculator{cal: cal}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = log.OrNoop(c.logger)
	return c
}

// Calendar returns the calendar ages are resolved against.
func (c *Calculator) Calendar() calendar.Calendar {
	return c.cal
}

// FractionalAge returns the age in years at now of someone born at birth.
// The result is 0 when birth equals now and negative when birth is after now.
func (c *Calculator) FractionalAge(birth, now time.Time) float64 {
	elapsed := c.cal.Components(components, birth, now)

	// Unit lengths must come from the same instant as the components.
	u := c.UnitLengthsAt(now)

	seconds := float64(elapsed.Second) + float64(elapsed.Nanosecond)/float64(u.SubsecondsInSecond)
	minutes := seconds / float64(u.SecondsInMinute)
	hours := minutes / float64(u.MinutesInHour)
	days := float64(elapsed.Day) + hours/float64(u.HoursInDay)
	years := float64(elapsed.Year) + days/float64(u.DaysInYear)

	return years
}

// UnitLengthsAt resolves every unit length for the units containing now.
// The result is never cached; lengths change when a boundary is crossed.
func (c *Calculator) UnitLengthsAt(now time.Time) UnitLengths {
	days, ok := calendar.DaysInYearAt(c.cal, now)
	if !ok {
		c.fallback("days in year", now, FallbackDaysInYear)
		days = FallbackDaysInYear
	}

	return UnitLengths{
		DaysInYear:         days,
		HoursInDay:         c.rangeOr(calendar.Hour, calendar.Day, now, FallbackHoursInDay),
		MinutesInHour:      c.rangeOr(calendar.Minute, calendar.Hour, now, FallbackMinutesInHour),
		SecondsInMinute:    c.rangeOr(calendar.Second, calendar.Minute, now, FallbackSecondsInMinute),
		SubsecondsInSecond: c.rangeOr(calendar.Nanosecond, calendar.Second, now, FallbackSubsecondsInSecond),
	}
}

func (c *Calculator) rangeOr(unit, within calendar.Unit, at time.Time, fallback int) int {
	n, ok := c.cal.Range(unit, within, at)
	if !ok || n <= 0 {
		c.fallback(unit.String()+" in "+within.String(), at, fallback)
		return fallback
	}
	return n
}

func (c *Calculator) fallback(what string, at time.Time, value int) {
	c.logger.Debug("calendar range unavailable, using fallback",
		log.String("range", what),
		log.Time("at", at),
		log.Int("fallback", value),
	)
}
