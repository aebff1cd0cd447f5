package cache

import (
	"time"

	"github.com/goliatone/go-record-cache/internal/cacheinfra"
)

// Config exposes per-cache configuration options for consumers of the
// cache package. Invalid values are fatal at Registry construction.
type Config struct {
	// Capacity is the maximum entry count. Must be greater than 0.
	Capacity int

	// TTLWrite is the maximum age since insertion before an entry expires,
	// regardless of access. Zero disables write-based expiry.
	TTLWrite time.Duration

	// TTLAccess is the maximum age since last read before an entry
	// expires. Zero disables access-based expiry.
	TTLAccess time.Duration
}

// DefaultConfig returns a Config populated with the production defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:  c.Capacity,
		TTLWrite:  c.TTLWrite,
		TTLAccess: c.TTLAccess,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:  cfg.Capacity,
		TTLWrite:  cfg.TTLWrite,
		TTLAccess: cfg.TTLAccess,
	}
}
