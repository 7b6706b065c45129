package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PHONEDATA_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-file", os.Getenv("PHONEDATA_DATA_FILE"), &cfg.DataFile)
	s.setString("format", os.Getenv("PHONEDATA_FORMAT"), &cfg.Format)
	s.setString("log-level", os.Getenv("PHONEDATA_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("debounce", os.Getenv("PHONEDATA_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	if err := s.setBoolFromString("watch", os.Getenv("PHONEDATA_WATCH"), &cfg.Watch); err != nil {
		return err
	}
	if err := s.setBoolFromString("strict-index", os.Getenv("PHONEDATA_STRICT_INDEX"), &cfg.StrictIndex); err != nil {
		return err
	}
	if err := s.setBoolFromString("check-sort", os.Getenv("PHONEDATA_CHECK_SORT"), &cfg.CheckSort); err != nil {
		return err
	}

	return nil
}
