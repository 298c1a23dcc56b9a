package offsetstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// FileStorage keeps one JSON file per key in a directory. Writes go through a
// temp file and rename under an exclusive flock so processes sharing the
// directory never observe partial values.
type FileStorage struct {
	dir string
}

// NewFileStorage returns a FileStorage rooted at dir. The directory is
// created on first write.
func NewFileStorage(dir string) (*FileStorage, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("file storage directory is required")
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the storage directory.
func (f *FileStorage) Dir() string { return f.dir }

func (f *FileStorage) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}
	unlock, err := f.lock(ctx, key, false)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return readFile(path)
}

func (f *FileStorage) Write(ctx context.Context, key string, data []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	unlock, err := f.lock(ctx, key, true)
	if err != nil {
		return err
	}
	defer unlock()
	return f.writeFile(key, path, data)
}

// Update holds the exclusive flock from the read through the rename.
func (f *FileStorage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	unlock, err := f.lock(ctx, key, true)
	if err != nil {
		return err
	}
	defer unlock()

	current, err := readFile(path)
	if errors.Is(err, ErrNotFound) {
		current = nil
	} else if err != nil {
		return err
	}
	next, write, err := fn(current)
	if err != nil || !write {
		return err
	}
	return f.writeFile(key, path, next)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeFile replaces path through a temp file. The caller holds the lock.
func (f *FileStorage) writeFile(key, path string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (f *FileStorage) Remove(ctx context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if _, err := os.Stat(f.dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	unlock, err := f.lock(ctx, key, true)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (f *FileStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// lock takes the per-key flock, shared for reads. A missing directory means
// nothing has been written yet, so reads proceed without a lock file.
func (f *FileStorage) lock(ctx context.Context, key string, exclusive bool) (func(), error) {
	if !exclusive {
		if _, err := os.Stat(f.dir); errors.Is(err, fs.ErrNotExist) {
			return func() {}, nil
		}
	}
	lock := flock.New(filepath.Join(f.dir, key+".lock"))
	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("lock %s: not acquired", lock.Path())
	}
	return func() { _ = lock.Unlock() }, nil
}
