package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.IndexPath != filepath.Join(dir, WorkspaceDir, "index.db") {
		t.Errorf("IndexPath = %q", cfg.IndexPath)
	}
	if cfg.Session.DefaultCatalog != "hive_metastore" {
		t.Errorf("DefaultCatalog = %q, want hive_metastore", cfg.Session.DefaultCatalog)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %s/%s", cfg.Logging.Format, cfg.Logging.Level)
	}
	if len(cfg.Scan.Exclude) == 0 {
		t.Error("default exclusions missing")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, WorkspaceDir), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := `
mapping: mappings/tables.yaml
session:
  defaultCatalog: main
  defaultSchema: analytics
logging:
  level: debug
`
	if err := os.WriteFile(filepath.Join(dir, WorkspaceDir, "config.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mapping != "mappings/tables.yaml" {
		t.Errorf("Mapping = %q", cfg.Mapping)
	}
	if cfg.Session.DefaultCatalog != "main" || cfg.Session.DefaultSchema != "analytics" {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset keys keep their defaults.
	if !cfg.Cache.Enabled {
		t.Error("cache default lost on partial config")
	}
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, WorkspaceDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, WorkspaceDir, "config.yaml"), []byte("a: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}
