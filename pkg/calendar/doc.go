// Package calendar resolves variable calendar unit lengths.
//
// A year is not always 365 days, a day is not always 24 hours and a minute
// is not always 60 seconds. This package answers those questions for a
// specific instant, so callers never have to assume constants.
//
// # Usage
//
//	cal := calendar.NewGregorian(calendar.WithLocation(time.UTC))
//
//	days, ok := calendar.DaysInYear(cal, 2024) // 366, true
//	secs, ok := cal.Range(calendar.Second, calendar.Minute, at)
//
// # Unavailable Results
//
// Every query returns an ok flag. A false flag means the calendar could not
// resolve the boundary (for example a year that does not fit in a
// time.Time). Callers decide which fallback to substitute.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package calendar
