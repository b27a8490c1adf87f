package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerhub.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "hand-histories", cfg.Collector.HandHistoryDir)
	assert.Equal(t, 30, cfg.Collector.PollSeconds)
	assert.Equal(t, "pokerhub.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8090, cfg.API.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

collector {
  hand_history_dir = "/data/hands"
  poll_seconds     = 5
}

storage {
  database_path = "/data/pokerhub.db"
}

api {
  port = 9000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/data/hands", cfg.Collector.HandHistoryDir)
	assert.Equal(t, 5, cfg.Collector.PollSeconds)
	assert.Equal(t, "/data/pokerhub.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 9000, cfg.API.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
collector {
  hand_history_dir = "/data/hands"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/hands", cfg.Collector.HandHistoryDir)
	assert.Equal(t, 30, cfg.Collector.PollSeconds, "missing values get defaults")
	assert.Equal(t, "pokerhub.db", cfg.Storage.DatabasePath, "missing blocks get defaults")
	assert.Equal(t, 8090, cfg.API.Port)
}

func TestLoadMalformedConfig(t *testing.T) {
	path := writeConfig(t, `collector { this is not hcl`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Collector.PollSeconds = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Storage.DatabasePath = ""
	assert.Error(t, cfg.Validate())
}
