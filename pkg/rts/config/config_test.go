package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/platewise/rts/pkg/rts/internalerr"
)

func TestLoadFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rts.yaml")
	content := "store: recipes.db\nsession: low-sugar\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "recipes.db" {
		t.Errorf("store = %q, want %q", cfg.Store, "recipes.db")
	}
	if cfg.Session != "low-sugar" {
		t.Errorf("session = %q, want %q", cfg.Session, "low-sugar")
	}
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rts.yaml")
	if err := os.WriteFile(path, []byte("store: recipes.db\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session != "main" {
		t.Errorf("session = %q, want default %q", cfg.Session, "main")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rts.yaml")
	if err := os.WriteFile(path, []byte("store: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadRejectsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rts.yaml")
	if err := os.WriteFile(path, []byte("store: \"\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rts.yaml")

	want := Config{Store: "kitchen.db", Session: "main"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
