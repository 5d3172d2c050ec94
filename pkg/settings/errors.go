package settings

import "errors"

var (
	// ErrInvalidPrecisionLevel is returned when a precision level is not
	// one of Light, Moderate or Terrifying.
	ErrInvalidPrecisionLevel = errors.New("settings: invalid precision level")

	// ErrInvalidBirthday is returned when a birthday cannot be parsed.
	ErrInvalidBirthday = errors.New("settings: invalid birthday")

	// ErrInvalidValue is returned by stores when a persisted value has the
	// wrong type or is out of range.
	ErrInvalidValue = errors.New("settings: invalid persisted value")

	// ErrWatchUnsupported is returned by Watch when the store cannot report
	// external changes.
	ErrWatchUnsupported = errors.New("settings: store does not support watching")
)
