package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_SECRET", "env-secret")
	t.Setenv("APP_ENVIRONMENT", "staging")
	t.Setenv("STORAGE_DB_PATH", "/tmp/ramp.db")
	t.Setenv("ADAPTER_BASE_URL", "https://api.example.com")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "20s")
	t.Setenv("ADAPTER_AUTH_POLICY", "auto-logout")
	t.Setenv("WORKERS_REFRESH_CHECK_INTERVAL", "90s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-secret", cfg.App.Secret)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "/tmp/ramp.db", cfg.Storage.DB.Path)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, AuthPolicyAutoLogout, cfg.Adapter.AuthPolicy)
	assert.Equal(t, 90*time.Second, cfg.Workers.RefreshCheckInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "not-a-duration")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env configs")
}
