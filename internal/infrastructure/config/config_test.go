package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ".pmo", "pmo.db"), cfg.SQLite.Path)
		assert.False(t, Exists(dir))
	})

	t.Run("reads the config file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(ConfigDir(dir), 0o755))
		content := "sqlite:\n  path: /tmp/custom.db\ncatalog:\n  cache_ttl_seconds: 60\n"
		require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0o644))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.db", cfg.SQLite.Path)
		assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL())
		assert.True(t, Exists(dir))
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(ConfigDir(dir), 0o755))
		require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte("sqlite: ["), 0o644))

		_, err := Load(dir)
		require.Error(t, err)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("PMO_DB_PATH", "/tmp/env.db")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env.db", cfg.SQLite.Path)
	})
}

func TestCatalogConfig_CacheTTL(t *testing.T) {
	assert.Equal(t, DefaultCatalogTTL, CatalogConfig{}.CacheTTL())
	assert.Equal(t, DefaultCatalogTTL, CatalogConfig{CacheTTLSeconds: -1}.CacheTTL())
	assert.Equal(t, 30*time.Second, CatalogConfig{CacheTTLSeconds: 30}.CacheTTL())
}
