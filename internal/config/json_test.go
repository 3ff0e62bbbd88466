package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {"secret": "json-secret", "environment": "production"},
		"storage": {"db": {"path": "ramp.db"}},
		"adapter": {
			"base_url": "https://api.example.com",
			"request_timeout": "30s",
			"auth_policy": "refresh"
		},
		"workers": {"refresh_check_interval": "45s"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-secret", cfg.App.Secret)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "ramp.db", cfg.Storage.DB.Path)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, AuthPolicyRefresh, cfg.Adapter.AuthPolicy)
	assert.Equal(t, 45*time.Second, cfg.Workers.RefreshCheckInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseJSON_BadDuration(t *testing.T) {
	path := writeTempJSON(t, `{"adapter": {"request_timeout": "soon"}}`)

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding json configs")
}
