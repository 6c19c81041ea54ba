package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.Server.Addr)
	}
	if cfg.Query.DefaultPerPage != 30 || cfg.Query.MaxPerPage != 200 || cfg.Query.MaxRows != 20000 {
		t.Fatalf("unexpected query defaults: %+v", cfg.Query)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://override/db")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Database.DSN != "postgres://override/db" {
		t.Fatalf("DSN override not applied: %s", cfg.Database.DSN)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr override not applied: %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level override not applied: %s", cfg.Logging.Level)
	}
}

func TestLoadYAMLFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("server:\n  addr: \":7070\"\nquery:\n  maxRows: 500\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REVIEWBOARD_CONFIG", path)

	cfg := Load()

	if cfg.Server.Addr != ":7070" {
		t.Fatalf("file addr not merged: %s", cfg.Server.Addr)
	}
	if cfg.Query.MaxRows != 500 {
		t.Fatalf("file maxRows not merged: %d", cfg.Query.MaxRows)
	}
	// Untouched fields keep their defaults.
	if cfg.Query.DefaultPerPage != 30 {
		t.Fatalf("defaults lost in merge: %+v", cfg.Query)
	}
}

func TestLoadBadFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REVIEWBOARD_CONFIG", path)

	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected defaults on parse failure, got %s", cfg.Server.Addr)
	}
}
