// Package display turns a birthday and a precision level into the text
// shown on screen: the age in years to a fixed number of decimal places,
// or a prompt when no birthday is set.
//
//	f := display.New(age.New(nil))
//	text := f.Format(s.Birthday(), time.Now(), s.PrecisionLevel())
//
// Formatting never fails.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package display
