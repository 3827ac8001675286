package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data/sales_data.txt", cfg.Input.Path)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 10, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Analytics.TopN)
	assert.Equal(t, float64(1000), cfg.Analytics.LowRevenue)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saleslens.yaml")

	original := Default()
	original.Catalog.BaseURL = "https://example.test"
	original.Analytics.LowRevenue = 250.5
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saleslens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [not: closed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_EnvOverridesAPIURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saleslens.yaml")
	require.NoError(t, Save(path, Default()))

	t.Setenv(EnvAPIURL, "http://localhost:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Catalog.BaseURL)
}
