package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TermLength != DefaultTermLength {
		t.Errorf("TermLength = %v, want %v", cfg.TermLength, DefaultTermLength)
	}
	if cfg.FragmentLimit != 10 {
		t.Errorf("FragmentLimit = %v, want 10", cfg.FragmentLimit)
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("PollInterval = %v, want 50ms", cfg.PollInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				LogPath:       "/tmp/log.ipl",
				TermLength:    1 << 16,
				FragmentLimit: 10,
				PollInterval:  time.Second,
			},
			wantErr: false,
		},
		{
			name: "missing log path",
			config: Config{
				TermLength:    1 << 16,
				FragmentLimit: 10,
				PollInterval:  time.Second,
			},
			wantErr: true,
		},
		{
			name: "non power of two term length",
			config: Config{
				LogPath:       "/tmp/log.ipl",
				TermLength:    1000,
				FragmentLimit: 10,
				PollInterval:  time.Second,
			},
			wantErr: true,
		},
		{
			name: "zero fragment limit",
			config: Config{
				LogPath:      "/tmp/log.ipl",
				TermLength:   1 << 16,
				PollInterval: time.Second,
			},
			wantErr: true,
		},
		{
			name: "zero poll interval",
			config: Config{
				LogPath:       "/tmp/log.ipl",
				TermLength:    1 << 16,
				FragmentLimit: 10,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSetterRespectsChanged(t *testing.T) {
	s := newConfigSetter(map[string]bool{"log-path": true})
	dst := "original"
	s.setString("log-path", "from-file", &dst)
	if dst != "original" {
		t.Errorf("setString overrode a changed flag: dst = %q", dst)
	}

	s2 := newConfigSetter(map[string]bool{})
	s2.setString("log-path", "from-file", &dst)
	if dst != "from-file" {
		t.Errorf("setString did not apply an unchanged flag: dst = %q", dst)
	}
}
