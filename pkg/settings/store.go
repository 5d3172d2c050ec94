package settings

import "context"

// Key names a persisted setting.
type Key string

const (
	KeyBirthday       Key = "birthday"
	KeyPrecisionLevel Key = "motivation_level"
)

// Store persists the raw setting values.
// Implementations must be safe for concurrent use.
type Store interface {
	// Birthday returns the stored birthday as seconds since the Unix epoch.
	// ok is false when no birthday is stored.
	Birthday() (seconds float64, ok bool, err error)

	// SetBirthday stores seconds, or removes the birthday when nil.
	SetBirthday(seconds *float64) error

	// PrecisionLevel returns the stored level integer. The value is not
	// validated; ok is false when nothing is stored.
	PrecisionLevel() (level int, ok bool, err error)

	// SetPrecisionLevel stores the level integer.
	SetPrecisionLevel(level int) error
}

// Watcher is implemented by stores that can report changes made outside
// this process, such as a settings file edited by hand.
type Watcher interface {
	// Watch calls onChange for each key that may have changed until ctx is
	// done. onChange is called from a single goroutine.
	Watch(ctx context.Context, onChange func(Key)) error
}
