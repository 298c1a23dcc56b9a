package offsetstore

import (
	"fmt"
	"log/slog"

	"lyricsync/internal/config"
	"lyricsync/internal/logging"
	"lyricsync/internal/metrics"
)

// Open builds a Store backed by the storage named in cfg.Offsets.Backend.
func Open(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("offsetstore: config is required")
	}
	storage, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	store := New(storage,
		WithKey(cfg.Offsets.Key),
		WithCapacity(cfg.Offsets.Capacity),
		WithLogger(logger),
		WithMetrics(m),
	)
	store.logger.Debug("offset store opened",
		logging.String("backend", cfg.Offsets.Backend),
		logging.String("key", store.key),
		logging.Int("capacity", store.capacity),
	)
	return store, nil
}

func openStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Offsets.Backend {
	case config.BackendMemory:
		return NewMemoryStorage(), nil
	case config.BackendFile, "":
		return NewFileStorage(cfg.Offsets.Path)
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLite.Path)
	case config.BackendLibSQL:
		return OpenLibSQL(cfg.LibSQL.URL, cfg.LibSQL.AuthToken)
	case config.BackendRedis:
		return NewRedisStorage(RedisOptions{
			URL:      cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("offsetstore: unsupported backend %q", cfg.Offsets.Backend)
	}
}
