package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultFPS is the default screen refresh rate.
	DefaultFPS = 30

	// MaxFPS bounds the refresh rate; nothing past nanosecond digits changes faster.
	MaxFPS = 240
)

// Config holds CLI configuration for motivation.
type Config struct {
	SettingsDir string

	FPS         int
	Timezone    string
	LeapSeconds bool

	LogLevel string
	Once     bool
	Prompt   string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SettingsDir: "", // Derived from the home directory during Validate
		FPS:         DefaultFPS,
		Timezone:    "Local",
		LeapSeconds: true,
		LogLevel:    zerolog.LevelInfoValue,
	}
}

// DefaultSettingsDir returns ~/.motivation if the user home directory is accessible.
func DefaultSettingsDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".motivation")
	}
	return ""
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.SettingsDir == "" {
		c.SettingsDir = DefaultSettingsDir()
	}
	if c.SettingsDir == "" {
		return fmt.Errorf("settings-dir is required (no home directory)")
	}

	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("fps must be between 1 and %d, got %d", MaxFPS, c.FPS)
	}

	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Location resolves Timezone. "Local" and "UTC" are always available; other
// names need the IANA database.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log-level: %w", err)
	}
	return lvl, nil
}

// FrameInterval returns the time between two frames.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
