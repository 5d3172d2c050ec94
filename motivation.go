// Package motivation shows how old you are, to nine decimal places.
//
// The work is split across sub-packages that can be imported on their own:
//
//   - pkg/calendar resolves variable unit lengths (leap years, DST days,
//     leap seconds)
//   - pkg/age computes fractional ages from them
//   - pkg/settings holds the birthday and precision level
//   - pkg/display formats an age for the screen
//
// This package wraps them for one-off use:
//
//	years := motivation.Age(birth, time.Now())
//	text := motivation.Format(settings.BirthdayAt(birth), time.Now(), settings.Terrifying)
package motivation

import (
	"fmt"
	"time"

	"github.com/motivation-app/motivation/pkg/age"
	"github.com/motivation-app/motivation/pkg/calendar"
	"github.com/motivation-app/motivation/pkg/display"
	"github.com/motivation-app/motivation/pkg/lifecycle"
	"github.com/motivation-app/motivation/pkg/log"
	"github.com/motivation-app/motivation/pkg/settings"
)

// Version is the version of the motivation module.
const Version = "1.0.0"

// Age returns the fractional age in years at now of someone born at birth.
// Without options the calendar is Gregorian in the local time zone with the
// IERS leap seconds.
func Age(birth, now time.Time, opts ...calendar.Option) float64 {
	return age.New(calendar.NewGregorian(opts...)).FractionalAge(birth, now)
}

// Format renders the age for b at now with the decimal places of p, or the
// default prompt when b is unset.
func Format(b settings.Birthday, now time.Time, p settings.PrecisionLevel, opts ...calendar.Option) string {
	calc := age.New(calendar.NewGregorian(opts...))
	return display.New(calc).Format(b, now, p)
}

type moduleVersion struct {
	version    string
	minVersion string
}

func modules() map[string]moduleVersion {
	return map[string]moduleVersion{
		"calendar":  {calendar.Version, calendar.MinCompatibleVersion},
		"age":       {age.Version, age.MinCompatibleVersion},
		"settings":  {settings.Version, settings.MinCompatibleVersion},
		"display":   {display.Version, display.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}
}

// ModuleVersions returns the version of every sub-module by name.
func ModuleVersions() map[string]string {
	out := make(map[string]string)
	for name, m := range modules() {
		out[name] = m.version
	}
	return out
}

// CheckVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func CheckVersions() error {
	for name, m := range modules() {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
