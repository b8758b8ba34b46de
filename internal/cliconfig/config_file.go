package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Path        string `toml:"path"`
	Check       *bool  `toml:"check"`
	Diff        *bool  `toml:"diff"`
	Quiet       *bool  `toml:"quiet"`
	Watch       *bool  `toml:"watch"`
	Debounce    string `toml:"debounce"`
	Lock        *bool  `toml:"lock"`
	LockTimeout string `toml:"lock_timeout"`
	LogLevel    string `toml:"log_level"`
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

// DefaultConfigPath returns ~/.envclean/config.toml, or "" when the home
// directory cannot be resolved.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".envclean", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("path", fc.Path, &cfg.Path)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setDuration("lock-timeout", fc.LockTimeout, &cfg.LockTimeout); err != nil {
		return err
	}

	s.setBool("check", fc.Check, &cfg.Check)
	s.setBool("diff", fc.Diff, &cfg.Diff)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("lock", fc.Lock, &cfg.Lock)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
