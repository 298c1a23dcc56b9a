package config

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendLibSQL = "libsql"
	BackendRedis  = "redis"
)

const (
	defaultOffsetsBackend  = BackendFile
	defaultOffsetsPath     = "~/.local/share/lyricsync/offsets"
	defaultOffsetsKey      = "lyric-sync-offsets"
	defaultOffsetsCapacity = 50
	defaultOffsetStepMs    = 50
	defaultSQLitePath      = "~/.local/share/lyricsync/offsets.db"
	defaultRedisURL        = "redis://127.0.0.1:6379/0"
	defaultAPIBind         = "127.0.0.1:7788"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLogDir          = ""
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Offsets: Offsets{
			Backend:  defaultOffsetsBackend,
			Path:     defaultOffsetsPath,
			Key:      defaultOffsetsKey,
			Capacity: defaultOffsetsCapacity,
			StepMs:   defaultOffsetStepMs,
		},
		SQLite: SQLite{
			Path: defaultSQLitePath,
		},
		Redis: Redis{
			URL: defaultRedisURL,
		},
		Lookup: Lookup{
			SkipMarkers: true,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
