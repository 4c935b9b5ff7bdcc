package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:   "postgres://localhost:5432/moyeo",
		TopRangeLimit: 5,
		UpcomingWeeks: 4,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{
		TopRangeLimit: 5,
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_NegativeLimits(t *testing.T) {
	cfg := &Config{
		DatabaseURL:   "postgres://localhost:5432/moyeo",
		TopRangeLimit: -1,
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moyeo_config.yaml")
	content := "databaseURL: postgres://localhost:5432/moyeo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/moyeo", cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.TopRangeLimit)
	assert.Equal(t, 4, cfg.UpcomingWeeks)
}

func TestLoadFromPath_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moyeo_config.yaml")
	content := "databaseURL: postgres://localhost:5432/moyeo\ntopRangeLimit: 10\nupcomingWeeks: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.TopRangeLimit)
	assert.Equal(t, 8, cfg.UpcomingWeeks)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moyeo_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databaseURL: [broken"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
