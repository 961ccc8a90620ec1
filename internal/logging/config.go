package logging

import "fmt"

// Rotation defaults applied when a Config leaves them zero.
const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 5
	defaultMaxAgeDays = 30
)

// Config controls log level and file rotation.
type Config struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSize    int    `json:"max_size"`    // MB per file before rotation
	MaxBackups int    `json:"max_backups"` // rotated files to keep
	MaxAge     int    `json:"max_age"`     // days to keep rotated files
}

// NewConfig builds a Config with the standard rotation policy.
func NewConfig(level, file string) *Config {
	return &Config{
		Level:      level,
		File:       file,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
	}
}

// Validate reports an unusable configuration before the logger is built.
func (c *Config) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	if c.MaxBackups < 0 || c.MaxAge < 0 {
		return fmt.Errorf("rotation settings must be non-negative")
	}
	return nil
}
