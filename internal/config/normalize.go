package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	envRedisURL      = "LYRICSYNC_REDIS_URL"
	envRedisPassword = "LYRICSYNC_REDIS_PASSWORD"
	envLibSQLURL     = "TURSO_DATABASE_URL"
	envLibSQLToken   = "TURSO_AUTH_TOKEN"
	envLogLevel      = "LYRICSYNC_LOG_LEVEL"
	envBackend       = "LYRICSYNC_OFFSETS_BACKEND"
	envAPIBind       = "LYRICSYNC_API_BIND"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizeOffsets(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeAPI()
	return c.normalizeLogging()
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{envRedisURL, &c.Redis.URL},
		{envRedisPassword, &c.Redis.Password},
		{envLibSQLURL, &c.LibSQL.URL},
		{envLibSQLToken, &c.LibSQL.AuthToken},
		{envLogLevel, &c.Logging.Level},
		{envBackend, &c.Offsets.Backend},
		{envAPIBind, &c.API.Bind},
	}
	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(value) != "" {
			*o.target = strings.TrimSpace(value)
		}
	}
	if value, ok := os.LookupEnv("LYRICSYNC_REDIS_DB"); ok {
		if db, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			c.Redis.DB = db
		}
	}
}

func (c *Config) normalizeOffsets() error {
	c.Offsets.Backend = strings.ToLower(strings.TrimSpace(c.Offsets.Backend))
	if c.Offsets.Backend == "" {
		c.Offsets.Backend = defaultOffsetsBackend
	}
	c.Offsets.Key = strings.TrimSpace(c.Offsets.Key)
	if c.Offsets.Key == "" {
		c.Offsets.Key = defaultOffsetsKey
	}
	if c.Offsets.Capacity == 0 {
		c.Offsets.Capacity = defaultOffsetsCapacity
	}
	if c.Offsets.StepMs == 0 {
		c.Offsets.StepMs = defaultOffsetStepMs
	}
	if strings.TrimSpace(c.Offsets.Path) == "" {
		c.Offsets.Path = defaultOffsetsPath
	}
	var err error
	if c.Offsets.Path, err = ExpandPath(c.Offsets.Path); err != nil {
		return fmt.Errorf("offsets.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	if strings.TrimSpace(c.SQLite.Path) == "" {
		c.SQLite.Path = defaultSQLitePath
	}
	var err error
	if c.SQLite.Path, err = ExpandPath(c.SQLite.Path); err != nil {
		return fmt.Errorf("sqlite.path: %w", err)
	}
	c.LibSQL.URL = strings.TrimSpace(c.LibSQL.URL)
	c.LibSQL.AuthToken = strings.TrimSpace(c.LibSQL.AuthToken)
	c.Redis.URL = strings.TrimSpace(c.Redis.URL)
	if c.Redis.URL == "" {
		c.Redis.URL = defaultRedisURL
	}
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = ExpandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
