package config

import (
	"errors"
	"fmt"
	"strings"

	"lyricsync/internal/offset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOffsets(); err != nil {
		return err
	}
	if err := c.validateBackend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOffsets() error {
	if c.Offsets.Capacity <= 0 {
		return errors.New("offsets.capacity must be positive")
	}
	if c.Offsets.StepMs <= 0 || c.Offsets.StepMs > offset.MaxMs-offset.MinMs {
		return fmt.Errorf("offsets.step_ms must be between 1 and %d", offset.MaxMs-offset.MinMs)
	}
	return nil
}

func (c *Config) validateBackend() error {
	switch c.Offsets.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
		return nil
	case BackendLibSQL:
		if c.LibSQL.URL == "" {
			return fmt.Errorf("libsql.url must be set when offsets.backend is %q (or set %s)", BackendLibSQL, envLibSQLURL)
		}
		return nil
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis.url must be set when offsets.backend is %q", BackendRedis)
		}
		if c.Redis.DB < 0 {
			return errors.New("redis.db must not be negative")
		}
		return nil
	default:
		return fmt.Errorf("offsets.backend: unsupported value %q (want one of %s)", c.Offsets.Backend,
			strings.Join([]string{BackendMemory, BackendFile, BackendSQLite, BackendLibSQL, BackendRedis}, ", "))
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
