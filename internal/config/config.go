// Package config resolves the client configuration from defaults, an
// optional YAML file, and environment variables. Command-line flags
// (applied by the CLI layer) take precedence over all of these.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for the invdash client.
type Config struct {
	// Server is the base URL of the inventory backend.
	Server string `yaml:"server"`
	// DataDir holds the local database with tokens and cached state.
	DataDir string `yaml:"data_dir"`
	// Addr is the listen address of the dashboard UI.
	Addr string `yaml:"addr"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:    "http://127.0.0.1:5000",
		Addr:      "127.0.0.1:8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load resolves the configuration: defaults, then ~/.invdash/config.yaml
// (if present), then environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path, err := configPath(); err == nil {
		if err := loadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if s := os.Getenv("INVDASH_SERVER"); s != "" {
		cfg.Server = s
	}
	if d := os.Getenv("INVDASH_DATA_DIR"); d != "" {
		cfg.DataDir = d
	}

	return cfg, nil
}

// ResolveDataDir returns the data directory, creating it if needed.
// Defaults to ~/.invdash.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("find home directory: %w", err)
		}
		dir = filepath.Join(home, ".invdash")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// DBPath returns the path of the local state database inside the
// resolved data directory.
func (c *Config) DBPath() (string, error) {
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "invdash.db"), nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".invdash", "config.yaml"), nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
