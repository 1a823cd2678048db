package cliconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`session_id = 1`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := DefaultConfig()
	changed := map[string]bool{}
	if fc, err := LoadFileConfig(path); err == nil {
		_ = ApplyFileConfig(&cfg, fc, changed)
	}

	w := NewConfigWatcher(path, &cfg, changed)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reloaded := make(chan struct{}, 1)
	go func() {
		_ = w.Run(ctx, func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`session_id = 2`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-reloaded:
	case <-ctx.Done():
		t.Fatal("timed out waiting for config reload")
	}

	if cfg.SessionID != 2 {
		t.Errorf("SessionID = %d, want 2 after reload", cfg.SessionID)
	}
}

func TestConfigWatcherNoPathBlocksUntilCancel(t *testing.T) {
	cfg := DefaultConfig()
	w := NewConfigWatcher("", &cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := w.Run(ctx, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
