package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/comalice/coffeemachine"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Machine.Inventory != coffeemachine.DefaultInventory() {
		t.Errorf("expected default inventory, got %+v", cfg.Machine.Inventory)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("logs must not go to stdout by default, got %q", cfg.Logging.Output)
	}
	if cfg.Journal.Path != "" {
		t.Errorf("journal should be off by default, got %q", cfg.Journal.Path)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Machine.ID != "coffee-machine" {
		t.Errorf("expected default id, got %q", cfg.Machine.ID)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
machine:
  id: lobby
  inventory:
    water: 1000
    milk: 0
    beans: 50
    cups: 3
    money: 0
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := coffeemachine.Inventory{Water: 1000, Milk: 0, Beans: 50, Cups: 3, Money: 0}
	if cfg.Machine.Inventory != want {
		t.Errorf("inventory = %+v, want %+v", cfg.Machine.Inventory, want)
	}
	if cfg.Machine.ID != "lobby" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected machine/logging: %+v %+v", cfg.Machine, cfg.Logging)
	}
	if cfg.Logging.Format != "console" || cfg.Journal.Format != "json" {
		t.Errorf("defaults lost: %+v %+v", cfg.Logging, cfg.Journal)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Machine.ID = "kitchen"
	cfg.Journal = JournalConfig{Path: "/tmp/journal.yaml", Format: "yaml"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"negative stock", "machine:\n  inventory:\n    cups: -1\n", "cups"},
		{"bad level", "logging:\n  level: loud\n", "logging level"},
		{"bad format", "logging:\n  format: xml\n", "logging format"},
		{"bad journal", "journal:\n  format: csv\n", "journal format"},
		{"empty id", "machine:\n  id: \"  \"\n", "machine id"},
		{"not yaml", "machine: [", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
