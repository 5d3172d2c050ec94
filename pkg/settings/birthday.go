package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Birthday is an optional birth instant. The zero value is unset.
type Birthday struct {
	at  time.Time
	set bool
}

// Unset returns a Birthday with no value.
func Unset() Birthday {
	return Birthday{}
}

// BirthdayAt returns a Birthday set to t.
func BirthdayAt(t time.Time) Birthday {
	return Birthday{at: t, set: true}
}

// maxUnixSeconds bounds stored birthdays well inside what time.Unix can
// represent without overflow.
const maxUnixSeconds = 1 << 62

// ValidUnixSeconds reports whether seconds is a finite value that
// BirthdayFromUnix can convert.
func ValidUnixSeconds(seconds float64) bool {
	return !math.IsNaN(seconds) && seconds > -maxUnixSeconds && seconds < maxUnixSeconds
}

// BirthdayFromUnix returns a Birthday from seconds since the Unix epoch.
// The fraction is rounded to the nearest nanosecond. Returns false if
// seconds is not a valid timestamp.
func BirthdayFromUnix(seconds float64) (Birthday, bool) {
	if !ValidUnixSeconds(seconds) {
		return Birthday{}, false
	}
	whole := math.Floor(seconds)
	nsec := math.Round((seconds - whole) * 1e9)
	if nsec >= 1e9 {
		whole++
		nsec -= 1e9
	}
	return BirthdayAt(time.Unix(int64(whole), int64(nsec))), true
}

// Get returns the instant and whether it is set.
func (b Birthday) Get() (time.Time, bool) {
	return b.at, b.set
}

// IsSet reports whether the birthday has a value.
func (b Birthday) IsSet() bool {
	return b.set
}

// Unix returns the birthday as seconds since the Unix epoch, the form
// stores persist. The result may fail ValidUnixSeconds for instants far
// outside the supported range.
func (b Birthday) Unix() (float64, bool) {
	if !b.set {
		return 0, false
	}
	return float64(b.at.Unix()) + float64(b.at.Nanosecond())/1e9, true
}

// Equal reports whether both are unset, or both are set to the same instant.
func (b Birthday) Equal(o Birthday) bool {
	if b.set != o.set {
		return false
	}
	return !b.set || b.at.Equal(o.at)
}

func (b Birthday) String() string {
	if !b.set {
		return "unset"
	}
	return b.at.Format(time.RFC3339Nano)
}

var birthdayLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseBirthday parses a birthday from user input. Accepted forms:
//
//   - RFC 3339, e.g. 1990-06-15T08:30:00Z
//   - a civil date or date-time without zone, resolved in loc,
//     e.g. 1990-06-15 or 1990-06-15T08:30
//   - "@" followed by Unix seconds, e.g. @645438600.5
func ParseBirthday(s string, loc *time.Location) (Birthday, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}

	if rest, ok := strings.CutPrefix(s, "@"); ok {
		sec, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, s)
		}
		b, ok := BirthdayFromUnix(sec)
		if !ok {
			return Birthday{}, fmt.Errorf("%w: %q is out of range", ErrInvalidBirthday, s)
		}
		return b, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return BirthdayAt(t), nil
	}
	for _, layout := range birthdayLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return BirthdayAt(t), nil
		}
	}
	return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, s)
}
