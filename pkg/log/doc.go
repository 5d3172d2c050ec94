// Package log provides the structured logging port used across motivation.
//
// Library packages (calendar, age, settings, display) never import a logging
// library directly. They accept a Logger and default to a no-op logger, so
// embedding applications decide where output goes.
//
// # Usage
//
// Wrap a zerolog logger:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//
// Or build the console logger used by the CLI:
//
//	logger := log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)
//
// Tests pass log.NewNoopLogger().
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
