package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server != "http://127.0.0.1:5000" {
		t.Errorf("unexpected default server: %q", cfg.Server)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected logging defaults: %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server: https://inventory.example.com\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFile(&cfg, path); err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}

	if cfg.Server != "https://inventory.example.com" {
		t.Errorf("expected server from file, got %q", cfg.Server)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from file, got %q", cfg.LogLevel)
	}
	// Untouched keys keep their defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("expected default log format, got %q", cfg.LogFormat)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := Default()
	if err := loadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Server != Default().Server {
		t.Errorf("config should be untouched, got %q", cfg.Server)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFile(&cfg, path); err == nil {
		t.Error("expected parse error for invalid YAML")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INVDASH_SERVER", "https://env.example.com")
	t.Setenv("INVDASH_DATA_DIR", t.TempDir())
	t.Setenv("HOME", t.TempDir()) // no config file in a fresh home

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server != "https://env.example.com" {
		t.Errorf("expected env override, got %q", cfg.Server)
	}
}

func TestDBPath(t *testing.T) {
	cfg := Default()
	cfg.DataDir = t.TempDir()

	path, err := cfg.DBPath()
	if err != nil {
		t.Fatalf("DBPath failed: %v", err)
	}
	if filepath.Base(path) != "invdash.db" {
		t.Errorf("unexpected db path: %q", path)
	}
}
