package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/shelfcloud_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECRETS_KEY", "6368616e676520746869732070617373776f726420746f206120736563726574")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "api.log"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	// Credential validation is bounded by a 10s deadline.
	assert.Equal(t, 10*time.Second, cfg.ValidateTimeout)
	assert.Equal(t, 30*time.Minute, cfg.MonitorInterval)
	assert.Equal(t, time.Hour, cfg.RecheckAfter)
	assert.Equal(t, 20, cfg.RateLimitRPS)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECRETS_KEY", "6368616e676520746869732070617373776f726420746f206120736563726574")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
