package offsetstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLStorage keeps values in a key/value table through database/sql.
type SQLStorage struct {
	db     *sql.DB
	driver string
}

// OpenSQLite opens (creating if needed) a local SQLite database at path.
func OpenSQLite(path string) (*SQLStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return newSQLStorage(db, "sqlite")
}

// OpenLibSQL connects to a libSQL server such as Turso. The auth token is
// passed as the authToken query parameter when set.
func OpenLibSQL(dbURL, authToken string) (*SQLStorage, error) {
	dbURL = strings.TrimSpace(dbURL)
	if dbURL == "" {
		return nil, errors.New("libsql url is required")
	}
	dsn := dbURL
	if authToken != "" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "authToken=" + url.QueryEscape(authToken)
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open libsql: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)
	return newSQLStorage(db, "libsql")
}

func newSQLStorage(db *sql.DB, driver string) (*SQLStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create %s schema: %w", driver, err)
	}
	return &SQLStorage{db: db, driver: driver}, nil
}

// Driver returns the database/sql driver name.
func (s *SQLStorage) Driver() string { return s.driver }

func (s *SQLStorage) Read(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(value), nil
}

const upsertQuery = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (s *SQLStorage) Write(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertQuery, key, string(data), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Update runs the read and the upsert in one transaction. A concurrent
// writer makes the commit fail instead of being overwritten.
func (s *SQLStorage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", key, err)
	}
	defer tx.Rollback()

	var current []byte
	var value string
	err = tx.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("select %s: %w", key, err)
	default:
		current = []byte(value)
	}

	next, write, err := fn(current)
	if err != nil || !write {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertQuery, key, string(next), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}
