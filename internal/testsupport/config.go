package testsupport

import (
	"path/filepath"
	"testing"

	"lyricsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Offsets default to the in-memory backend.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Offsets.Backend = config.BackendMemory
	cfgVal.Offsets.Path = filepath.Join(base, "offsets")
	cfgVal.SQLite.Path = filepath.Join(base, "offsets.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackend selects the offset storage backend.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Offsets.Backend = backend
	}
}

// WithCapacity overrides the offset cache bound.
func WithCapacity(capacity int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Offsets.Capacity = capacity
	}
}

// WithSkipMarkers toggles marker skipping for lookups.
func WithSkipMarkers(skip bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lookup.SkipMarkers = skip
	}
}
