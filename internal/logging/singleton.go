package logging

import (
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger initializes the global logger. It must be called once at
// startup before any GetGlobalLogger call.
func InitLogger(config *Config) error {
	mu.Lock()
	defer mu.Unlock()

	logger, err := NewLogger(config)
	if err != nil {
		return err
	}
	instance = logger
	return nil
}

// GetGlobalLogger returns the global logger instance. Before InitLogger it
// returns a plain stderr logger so early failures are still visible.
func GetGlobalLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return newFallbackLogger()
	}
	return instance
}
