package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for TOML. Pointers distinguish an explicit false.
type FileConfig struct {
	SettingsDir string `toml:"settings_dir"`
	FPS         int    `toml:"fps"`
	Timezone    string `toml:"timezone"`
	LeapSeconds *bool  `toml:"leap_seconds"`
	LogLevel    string `toml:"log_level"`
	Once        *bool  `toml:"once"`
	Prompt      string `toml:"prompt"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.motivation/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if dir := DefaultSettingsDir(); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("settings-dir", fc.SettingsDir, &cfg.SettingsDir)
	s.setString("timezone", fc.Timezone, &cfg.Timezone)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("prompt", fc.Prompt, &cfg.Prompt)

	s.setInt("fps", fc.FPS, &cfg.FPS)

	s.setBool("leap-seconds", fc.LeapSeconds, &cfg.LeapSeconds)
	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
