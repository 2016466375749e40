package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q (expected %s or %s)", c.Database.Driver, DriverPostgres, DriverMySQL))
	}
	if strings.TrimSpace(c.Database.Host) == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if strings.TrimSpace(c.Database.Name) == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.Database.MaxOpenConns))
	}

	switch c.Cache.Backend {
	case CacheLRU:
		if c.Cache.Size < 1 {
			errs = append(errs, fmt.Errorf("CACHE_SIZE must be at least 1, got %d", c.Cache.Size))
		}
	case CacheRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when CACHE_BACKEND=redis"))
		}
	case CacheNone:
	default:
		errs = append(errs, fmt.Errorf("unsupported CACHE_BACKEND %q", c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL cannot be negative"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}

	return errors.Join(errs...)
}

// RegistrationEnabled reports whether the process should register itself with Consul.
func (c *Config) RegistrationEnabled() bool {
	return strings.TrimSpace(c.Consul.Addr) != ""
}
