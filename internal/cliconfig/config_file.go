package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	LogPath       string `toml:"log_path"`
	Create        *bool  `toml:"create"`
	TermLength    int    `toml:"term_length"`
	InitialTermID int    `toml:"initial_term_id"`
	SessionID     int    `toml:"session_id"`
	StreamID      int    `toml:"stream_id"`
	FragmentLimit int    `toml:"fragment_limit"`
	PollInterval  string `toml:"poll_interval"`
	Once          *bool  `toml:"once"`
	Verbose       *bool  `toml:"verbose"`
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

// DefaultConfigPath returns ~/.imagepoll/config.toml if the user home
// directory is accessible, or "" otherwise.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".imagepoll", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-path", fc.LogPath, &cfg.LogPath)
	s.setInt("term-length", fc.TermLength, &cfg.TermLength)
	s.setInt("initial-term-id", fc.InitialTermID, &cfg.InitialTermID)
	s.setInt("session-id", fc.SessionID, &cfg.SessionID)
	s.setInt("stream-id", fc.StreamID, &cfg.StreamID)
	s.setInt("fragment-limit", fc.FragmentLimit, &cfg.FragmentLimit)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}

	s.setBool("create", fc.Create, &cfg.Create)
	s.setBool("once", fc.Once, &cfg.Once)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
