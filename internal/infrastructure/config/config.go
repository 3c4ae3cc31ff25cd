// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for pmo configuration.
	DefaultConfigDir = ".pmo"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default SQLite database file name.
	DefaultDBFile = "pmo.db"
	// DefaultCatalogTTL is the default entity type cache TTL.
	DefaultCatalogTTL = 5 * time.Minute
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// CatalogConfig holds configuration for the entity type catalog cache.
type CatalogConfig struct {
	// CacheTTLSeconds bounds how stale a cached entity type read may
	// be. Zero means the default.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds,omitempty"`
}

// CacheTTL returns the configured TTL as a duration.
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return DefaultCatalogTTL
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Default returns a Config with default values rooted at basePath.
func Default(basePath string) *Config {
	return &Config{
		SQLite: SQLiteConfig{
			Path: filepath.Join(basePath, DefaultConfigDir, DefaultDBFile),
		},
	}
}

// Load loads configuration from the .pmo directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	cfg := Default(basePath)

	data, err := os.ReadFile(ConfigFilePath(basePath))
	if os.IsNotExist(err) {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("PMO_DB_PATH"); path != "" {
		c.SQLite.Path = path
	}
}

// ConfigDir returns the path to the .pmo config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a pmo config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
