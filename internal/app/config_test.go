package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.BaseURL)
	assert.Equal(t, 15, cfg.TimeoutSeconds)
	assert.Equal(t, 20, cfg.PerPage)
}

func TestLoadConfigClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://api.ecoa.example/api/v1\nper_page: 500\ntimeout_seconds: -3\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.ecoa.example/api/v1", cfg.BaseURL)
	assert.Equal(t, 100, cfg.PerPage)
	assert.Equal(t, 15, cfg.TimeoutSeconds)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	in := Config{BaseURL: "https://api.ecoa.example/api/v1", TimeoutSeconds: 30, Theme: "midnight", PerPage: 50}
	require.NoError(t, SaveConfig(in, path))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveConfigRequiresPath(t *testing.T) {
	assert.Error(t, SaveConfig(DefaultConfig(), ""))
}
