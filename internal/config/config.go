package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Offsets configures the persistent per-song offset cache.
type Offsets struct {
	Backend  string `toml:"backend"`  // memory, file, sqlite, libsql, redis
	Path     string `toml:"path"`     // directory for the file backend
	Key      string `toml:"key"`      // storage key holding the JSON object
	Capacity int    `toml:"capacity"` // LRU bound
	StepMs   int    `toml:"step_ms"`  // nudge step for offset inc/dec
}

// SQLite configures the local SQLite backend.
type SQLite struct {
	Path string `toml:"path"`
}

// LibSQL configures a remote libSQL (Turso) backend.
type LibSQL struct {
	URL       string `toml:"url"`
	AuthToken string `toml:"auth_token"`
}

// Redis configures the Redis backend.
type Redis struct {
	URL      string `toml:"url"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Lookup configures live highlighting lookups.
type Lookup struct {
	SkipMarkers bool `toml:"skip_markers"`
}

// API configures the HTTP server.
type API struct {
	Bind string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for lyricsync.
type Config struct {
	Offsets Offsets `toml:"offsets"`
	SQLite  SQLite  `toml:"sqlite"`
	LibSQL  LibSQL  `toml:"libsql"`
	Redis   Redis   `toml:"redis"`
	Lookup  Lookup  `toml:"lookup"`
	API     API     `toml:"api"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/lyricsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has environment overrides applied and all paths expanded. The
// resolved path and whether it existed are returned for diagnostics.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("lyricsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the configured backend and log
// output write into.
func (c *Config) EnsureDirectories() error {
	var dirs []string
	switch c.Offsets.Backend {
	case BackendFile:
		dirs = append(dirs, c.Offsets.Path)
	case BackendSQLite:
		dirs = append(dirs, filepath.Dir(c.SQLite.Path))
	}
	if c.Logging.Dir != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

const redacted = "<redacted>"

// Redacted returns a copy of c with credentials masked for display.
func (c Config) Redacted() Config {
	if c.LibSQL.AuthToken != "" {
		c.LibSQL.AuthToken = redacted
	}
	if c.Redis.Password != "" {
		c.Redis.Password = redacted
	}
	return c
}
