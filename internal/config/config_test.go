package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PREVIEW", "")
	t.Setenv("AUTH_ALLOWED_ROLES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.App.Preview)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, []string{"support", "admin"}, cfg.Auth.AllowedRoles)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ReferenceTTL())
	assert.Equal(t, 2*time.Minute, cfg.Cache.OperationalTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PREVIEW", "true")
	t.Setenv("AUTH_ALLOWED_ROLES", "support, ,coordinator")
	t.Setenv("CACHE_OPERATIONAL_TTL_SECONDS", "30")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "bogus")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.Preview)
	assert.Equal(t, []string{"support", "coordinator"}, cfg.Auth.AllowedRoles)
	assert.Equal(t, 30*time.Second, cfg.Cache.OperationalTTL())
	assert.Equal(t, 20*time.Second, cfg.Backend.Timeout())
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}
