package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigAppliesRotationDefaults(t *testing.T) {
	cfg := NewConfig("info", "/tmp/api.log")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultMaxSizeMB, cfg.MaxSize)
	assert.Equal(t, defaultMaxBackups, cfg.MaxBackups)
	assert.Equal(t, defaultMaxAgeDays, cfg.MaxAge)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"unknown level", func(c *Config) { c.Level = "trace" }, true},
		{"zero max size", func(c *Config) { c.MaxSize = 0 }, true},
		{"negative max age", func(c *Config) { c.MaxAge = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("info", "/tmp/api.log")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
