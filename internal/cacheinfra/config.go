package cacheinfra

import "time"

// Config holds the configuration for a single cache store.
type Config struct {
	// Capacity defines the maximum number of entries the store can hold.
	// Must be greater than 0.
	Capacity int

	// TTLWrite is the maximum age of an entry since insertion. It is
	// absolute: reads never extend it. Zero disables write-based expiry.
	TTLWrite time.Duration

	// TTLAccess is the maximum age of an entry since its last read.
	// Zero disables access-based expiry.
	TTLAccess time.Duration
}

// DefaultConfig returns a Config with the production defaults:
// 1000 entries, 10 minute write expiry, 5 minute access expiry.
func DefaultConfig() Config {
	return Config{
		Capacity:  1000,
		TTLWrite:  10 * time.Minute,
		TTLAccess: 5 * time.Minute,
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.TTLWrite < 0 {
		return &ConfigError{Field: "TTLWrite", Message: "must be non-negative"}
	}

	if c.TTLAccess < 0 {
		return &ConfigError{Field: "TTLAccess", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
