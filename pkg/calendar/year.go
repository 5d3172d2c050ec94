package calendar

import "time"

// LastDayOfYear returns midnight of the final day of year, composed from
// the calendar's own month and day ranges.
func LastDayOfYear(cal Calendar, year int) (time.Time, bool) {
	first, ok := cal.Date(DateComponents{Year: year})
	if !ok {
		return time.Time{}, false
	}

	months, ok := cal.Range(Month, Year, first)
	if !ok {
		return time.Time{}, false
	}
	lastMonth, ok := cal.Date(DateComponents{Year: year, Month: months})
	if !ok {
		return time.Time{}, false
	}

	days, ok := cal.Range(Day, Month, lastMonth)
	if !ok {
		return time.Time{}, false
	}
	return cal.Date(DateComponents{Year: year, Month: months, Day: days})
}

// DaysInYear returns the number of days between the last day of year-1 and
// the last day of year.
func DaysInYear(cal Calendar, year int) (int, bool) {
	begin, ok := LastDayOfYear(cal, year-1)
	if !ok {
		return 0, false
	}
	end, ok := LastDayOfYear(cal, year)
	if !ok {
		return 0, false
	}
	return cal.Components(Day, begin, end).Day, true
}

// DaysInYearAt returns DaysInYear for the year containing t in the
// calendar's location.
func DaysInYearAt(cal Calendar, t time.Time) (int, bool) {
	return DaysInYear(cal, t.In(cal.Location()).Year())
}
