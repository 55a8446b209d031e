package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Source.PageSize)
	assert.Equal(t, 3, cfg.Source.MaxAttempts)
	assert.Equal(t, 500, cfg.Sync.BatchSize)
	assert.False(t, cfg.Sync.SnapshotEnabled)
	assert.Equal(t, int64(17700000000000000), cfg.Sync.WarehouseIncrement)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_MAX_ATTEMPTS", "5")
	t.Setenv("SYNC_SNAPSHOT_ENABLED", "true")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Source.MaxAttempts)
	assert.True(t, cfg.Sync.SnapshotEnabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SOURCE_TERM_ID=125\nSERVER_API_KEY=secret\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SOURCE_TERM_ID")
		os.Unsetenv("SERVER_API_KEY")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 125, cfg.Source.TermID)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}
