// Package settings holds the two user settings that drive the age display:
// the birthday and the precision level.
//
// Settings wraps a Store that persists the raw values (a Unix timestamp in
// seconds and a level integer) and publishes a notification to every
// subscriber each time a value changes.
//
// # Usage
//
//	s := settings.New(settings.NewMemoryStore())
//
//	sub := s.OnBirthdayChange(func(b settings.Birthday) {
//	    // runs synchronously before SetBirthday returns
//	})
//	defer s.Unsubscribe(sub)
//
//	if err := s.SetBirthday(settings.BirthdayAt(t)); err != nil {
//	    return err
//	}
//
// # Defaults
//
// A fresh store has no birthday and the Terrifying precision level. A
// persisted level that is not 0, 1 or 2 also reads as Terrifying.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package settings
