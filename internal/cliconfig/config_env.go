package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "MOTIVATION_"

// ApplyEnvConfig applies configuration from environment variables (MOTIVATION_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("settings-dir", os.Getenv(EnvPrefix+"SETTINGS_DIR"), &cfg.SettingsDir)
	s.setString("timezone", os.Getenv(EnvPrefix+"TIMEZONE"), &cfg.Timezone)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("prompt", os.Getenv(EnvPrefix+"PROMPT"), &cfg.Prompt)

	if err := s.setIntFromString("fps", os.Getenv(EnvPrefix+"FPS"), &cfg.FPS); err != nil {
		return err
	}

	s.setBoolFromString("leap-seconds", os.Getenv(EnvPrefix+"LEAP_SECONDS"), &cfg.LeapSeconds)
	s.setBoolFromString("once", os.Getenv(EnvPrefix+"ONCE"), &cfg.Once)

	return nil
}
