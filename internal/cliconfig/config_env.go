package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (IMAGEPOLL_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-path", os.Getenv("IMAGEPOLL_LOG_PATH"), &cfg.LogPath)

	if err := s.setIntFromString("term-length", os.Getenv("IMAGEPOLL_TERM_LENGTH"), &cfg.TermLength); err != nil {
		return err
	}
	if err := s.setIntFromString("initial-term-id", os.Getenv("IMAGEPOLL_INITIAL_TERM_ID"), &cfg.InitialTermID); err != nil {
		return err
	}
	if err := s.setIntFromString("session-id", os.Getenv("IMAGEPOLL_SESSION_ID"), &cfg.SessionID); err != nil {
		return err
	}
	if err := s.setIntFromString("stream-id", os.Getenv("IMAGEPOLL_STREAM_ID"), &cfg.StreamID); err != nil {
		return err
	}
	if err := s.setIntFromString("fragment-limit", os.Getenv("IMAGEPOLL_FRAGMENT_LIMIT"), &cfg.FragmentLimit); err != nil {
		return err
	}
	if err := s.setDuration("poll", os.Getenv("IMAGEPOLL_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}

	s.setBoolFromString("create", os.Getenv("IMAGEPOLL_CREATE"), &cfg.Create)
	s.setBoolFromString("once", os.Getenv("IMAGEPOLL_ONCE"), &cfg.Once)
	s.setBoolFromString("verbose", os.Getenv("IMAGEPOLL_VERBOSE"), &cfg.Verbose)

	return nil
}
