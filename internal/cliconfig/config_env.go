package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ENVCLEAN_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("path", os.Getenv("ENVCLEAN_PATH"), &cfg.Path)
	s.setString("log-level", os.Getenv("ENVCLEAN_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("debounce", os.Getenv("ENVCLEAN_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setDuration("lock-timeout", os.Getenv("ENVCLEAN_LOCK_TIMEOUT"), &cfg.LockTimeout); err != nil {
		return err
	}

	bools := []struct {
		flag string
		env  string
		dst  *bool
	}{
		{"check", "ENVCLEAN_CHECK", &cfg.Check},
		{"diff", "ENVCLEAN_DIFF", &cfg.Diff},
		{"quiet", "ENVCLEAN_QUIET", &cfg.Quiet},
		{"watch", "ENVCLEAN_WATCH", &cfg.Watch},
		{"lock", "ENVCLEAN_LOCK", &cfg.Lock},
	}
	for _, b := range bools {
		if err := s.setBoolFromString(b.flag, os.Getenv(b.env), b.dst); err != nil {
			return err
		}
	}

	return nil
}
