package calendar

import "time"

// iersLeapDays lists the UTC dates whose last minute carried a positive
// leap second (23:59:60), as published in IERS Bulletin C.
var iersLeapDays = []struct {
	year  int
	month time.Month
	day   int
}{
	{1972, time.June, 30}, {1972, time.December, 31},
	{1973, time.December, 31}, {1974, time.December, 31},
	{1975, time.December, 31}, {1976, time.December, 31},
	{1977, time.December, 31}, {1978, time.December, 31},
	{1979, time.December, 31}, {1981, time.June, 30},
	{1982, time.June, 30}, {1983, time.June, 30},
	{1985, time.June, 30}, {1987, time.December, 31},
	{1989, time.December, 31}, {1990, time.December, 31},
	{1992, time.June, 30}, {1993, time.June, 30},
	{1994, time.June, 30}, {1995, time.December, 31},
	{1997, time.June, 30}, {1998, time.December, 31},
	{2005, time.December, 31}, {2008, time.December, 31},
	{2012, time.June, 30}, {2015, time.June, 30},
	{2016, time.December, 31},
}

// LeapSeconds is a set of UTC minutes that are 61 seconds long.
// The zero value contains no leap seconds.
type LeapSeconds struct {
	// keyed by Unix minute (seconds / 60) of the 23:59 UTC minute
	minutes map[int64]struct{}
}

// NewLeapSeconds builds a table from UTC dates whose final minute carries a
// leap second. Only the year, month and day of each date are used.
func NewLeapSeconds(days ...time.Time) LeapSeconds {
	ls := LeapSeconds{minutes: make(map[int64]struct{}, len(days))}
	for _, d := range days {
		y, m, dd := d.UTC().Date()
		last := time.Date(y, m, dd, 23, 59, 0, 0, time.UTC)
		ls.minutes[last.Unix()/60] = struct{}{}
	}
	return ls
}

// IERSLeapSeconds returns the table of every leap second inserted since 1972.
func IERSLeapSeconds() LeapSeconds {
	days := make([]time.Time, 0, len(iersLeapDays))
	for _, d := range iersLeapDays {
		days = append(days, time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC))
	}
	return NewLeapSeconds(days...)
}

// NoLeapSeconds returns an empty table.
func NoLeapSeconds() LeapSeconds {
	return LeapSeconds{}
}

// Len returns the number of leap seconds in the table.
func (ls LeapSeconds) Len() int {
	return len(ls.minutes)
}

// InMinute reports whether the UTC minute containing t is 61 seconds long.
func (ls LeapSeconds) InMinute(t time.Time) bool {
	if len(ls.minutes) == 0 {
		return false
	}
	_, ok := ls.minutes[unixMinute(t)]
	return ok
}

// Between counts leap seconds whose minute starts in [start, end).
func (ls LeapSeconds) Between(start, end time.Time) int {
	if len(ls.minutes) == 0 || !start.Before(end) {
		return 0
	}
	lo, hi := ceilUnixMinute(start), ceilUnixMinute(end)
	n := 0
	for m := range ls.minutes {
		if m >= lo && m < hi {
			n++
		}
	}
	return n
}

func unixMinute(t time.Time) int64 {
	return floorDiv(t.Unix(), 60)
}

// ceilUnixMinute returns the first Unix minute starting at or after t.
func ceilUnixMinute(t time.Time) int64 {
	m := unixMinute(t)
	if t.Unix()%60 != 0 || t.Nanosecond() != 0 {
		m++
	}
	return m
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
