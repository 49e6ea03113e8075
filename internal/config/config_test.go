package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/books.csv", cfg.Dataset.Path)
	assert.Equal(t, 20, cfg.Dataset.TopBooks)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BOOKDASH_PORT", "9090")
	t.Setenv("BOOKDASH_DATASET", "/tmp/other.csv")
	t.Setenv("BOOKDASH_CACHE_SIZE", "32")

	cfg := Load()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/other.csv", cfg.Dataset.Path)
	assert.Equal(t, 32, cfg.Cache.Size)
}

func TestValidate(t *testing.T) {
	base := func() *Config { return Load() }

	cfg := base()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Dataset.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Dataset.TopBooks = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Cache.Size = -1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.WriteTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LogLevel = "debug"
	assert.NoError(t, cfg.Validate())
}
