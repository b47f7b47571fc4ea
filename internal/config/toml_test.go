package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Practice.Set != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPractice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[practice]
set = "pte"
flash = "3s"
hints = true
weak-top = 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Set == nil || *cfg.Practice.Set != "pte" {
		t.Fatalf("unexpected set: %v", cfg.Practice.Set)
	}
	if cfg.Practice.Hints == nil || !*cfg.Practice.Hints {
		t.Fatalf("expected hints enabled")
	}
	if cfg.Practice.WeakTop == nil || *cfg.Practice.WeakTop != 5 {
		t.Fatalf("unexpected weak-top: %v", cfg.Practice.WeakTop)
	}
	flash, err := cfg.Practice.FlashDuration()
	if err != nil {
		t.Fatalf("flash duration: %v", err)
	}
	if flash == nil || *flash != 3*time.Second {
		t.Fatalf("unexpected flash: %v", flash)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "dictate", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "dictate", "dictate.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultSetPath("pte"); got != filepath.Join("/tmp/cfg", "dictate", "sets", "pte.txt") {
		t.Fatalf("unexpected set path: %s", got)
	}
}
