package offsetstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"lyricsync/internal/logging"
	"lyricsync/internal/metrics"
	"lyricsync/internal/offset"
)

const (
	// DefaultKey is the storage key holding every offset.
	DefaultKey = "lyric-sync-offsets"
	// DefaultCapacity bounds the number of remembered songs.
	DefaultCapacity = 50
)

// Store is the bounded per-song offset cache. It is safe for concurrent use.
type Store struct {
	storage  Storage
	key      string
	capacity int
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key = strings.TrimSpace(key); key != "" {
			s.key = key
		}
	}
}

// WithCapacity overrides the LRU bound.
func WithCapacity(capacity int) Option {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logging.NewComponentLogger(logger, "offsetstore")
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps storage in a Store.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		logger:   logging.NewComponentLogger(nil, "offsetstore"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// Capacity returns the LRU bound.
func (s *Store) Capacity() int { return s.capacity }

// Save clamps offsetMs and records it for songID, evicting the least
// recently updated songs beyond capacity. Blank song IDs are ignored.
func (s *Store) Save(ctx context.Context, songID string, offsetMs int) {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted int
	entries, err := s.update(ctx, func(entries map[string]Entry) (map[string]Entry, bool) {
		updatedAt := s.now().UnixMilli()
		for _, entry := range entries {
			if entry.UpdatedAt >= updatedAt {
				updatedAt = entry.UpdatedAt + 1
			}
		}
		entries[songID] = Entry{SongID: songID, OffsetMs: offset.Clamp(offsetMs), UpdatedAt: updatedAt}
		before := len(entries)
		entries = EvictLRU(entries, s.capacity)
		evicted = before - len(entries)
		return entries, true
	})
	if err != nil {
		s.warn(ctx, "offset not saved", "offset_save_failed", "save", err,
			logging.String(logging.FieldSongID, songID),
			logging.String(logging.FieldImpact, "offset will not be remembered for this song"))
		return
	}

	s.metrics.IncOffsetsSaved()
	s.metrics.AddOffsetsEvicted(evicted)
	s.metrics.SetCachedOffsets(len(entries))
	logging.WithContext(ctx, s.logger).Debug("offset saved",
		logging.String(logging.FieldSongID, songID),
		logging.Int("offset_ms", entries[songID].OffsetMs),
		logging.Int("evicted", evicted),
	)
}

// Load returns the remembered offset for songID, or 0 when there is none or
// it cannot be read.
func (s *Store) Load(ctx context.Context, songID string) int {
	entry, ok := s.Get(ctx, songID)
	if !ok {
		return 0
	}
	return entry.OffsetMs
}

// Get returns the full entry for songID.
func (s *Store) Get(ctx context.Context, songID string) (Entry, bool) {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return Entry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		s.warn(ctx, "offset unavailable", "offset_load_failed", "load", err,
			logging.String(logging.FieldSongID, songID),
			logging.String(logging.FieldImpact, "playback uses a zero offset"))
		return Entry{}, false
	}
	entry, ok := entries[songID]
	return entry, ok
}

// Remove forgets songID. It reports whether an entry was removed.
func (s *Store) Remove(ctx context.Context, songID string) bool {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed bool
	entries, err := s.update(ctx, func(entries map[string]Entry) (map[string]Entry, bool) {
		if _, ok := entries[songID]; !ok {
			return entries, false
		}
		delete(entries, songID)
		removed = true
		return entries, true
	})
	if err != nil {
		s.warn(ctx, "offset not removed", "offset_remove_failed", "remove", err,
			logging.String(logging.FieldSongID, songID))
		return false
	}
	if !removed {
		return false
	}
	s.metrics.SetCachedOffsets(len(entries))
	return true
}

// List returns every entry, most recently updated first.
func (s *Store) List(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		s.warn(ctx, "offsets unavailable", "offset_list_failed", "list", err)
		return nil
	}
	list := oldestFirst(entries)
	sort.SliceStable(list, func(i, j int) bool { return list[i].UpdatedAt > list[j].UpdatedAt })
	return list
}

// Count returns the number of remembered songs, or 0 when storage fails.
func (s *Store) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		s.warn(ctx, "offsets unavailable", "offset_count_failed", "count", err)
		return 0
	}
	return len(entries)
}

// Clear forgets every song.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(ctx, s.key); err != nil {
		s.warn(ctx, "offsets not cleared", "offset_clear_failed", "clear", err)
		return
	}
	s.metrics.SetCachedOffsets(0)
	logging.WithContext(ctx, s.logger).Debug("offsets cleared")
}

// Close releases the backend when it holds resources.
func (s *Store) Close() error {
	if closer, ok := s.storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// read loads the entry map. Only storage failures are returned.
func (s *Store) read(ctx context.Context) (map[string]Entry, error) {
	data, err := s.storage.Read(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return make(map[string]Entry), nil
	}
	if err != nil {
		return nil, err
	}
	return s.decode(ctx, data), nil
}

// decode parses a stored value. Corrupt data is logged and treated as empty
// so the next save replaces it.
func (s *Store) decode(ctx context.Context, data []byte) map[string]Entry {
	if data == nil {
		return make(map[string]Entry)
	}
	entries, dropped, err := decodeEntries(data)
	if err != nil {
		s.warn(ctx, "stored offsets are corrupt", "offset_data_corrupt", "decode", err,
			logging.String(logging.FieldErrorHint, "the stored value is not a JSON object"),
			logging.String(logging.FieldImpact, "stored offsets are ignored and replaced on the next save"))
		return make(map[string]Entry)
	}
	if dropped > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "ignored malformed offset entries", "offset_entries_malformed",
			logging.Int("dropped", dropped),
			logging.String(logging.FieldImpact, "affected songs use a zero offset"))
	}
	return entries
}

// update applies fn to the stored entries and writes the result when fn
// reports a change. Backends implementing Updater keep other processes out
// for the whole cycle; the rest get a plain read then write.
func (s *Store) update(ctx context.Context, fn func(map[string]Entry) (map[string]Entry, bool)) (map[string]Entry, error) {
	if updater, ok := s.storage.(Updater); ok {
		var entries map[string]Entry
		err := updater.Update(ctx, s.key, func(current []byte) ([]byte, bool, error) {
			var changed bool
			entries, changed = fn(s.decode(ctx, current))
			if !changed {
				return nil, false, nil
			}
			data, err := encodeEntries(entries)
			if err != nil {
				return nil, false, err
			}
			return data, true, nil
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	}

	entries, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	entries, changed := fn(entries)
	if !changed {
		return entries, nil
	}
	if err := s.write(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) write(ctx context.Context, entries map[string]Entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	return s.storage.Write(ctx, s.key, data)
}

func (s *Store) warn(ctx context.Context, msg, eventType, op string, err error, attrs ...logging.Attr) {
	s.metrics.IncStorageErrors(op)
	attrs = append([]logging.Attr{logging.Error(err), logging.String("key", s.key)}, attrs...)
	logging.WarnWithContext(logging.WithContext(ctx, s.logger), msg, eventType, attrs...)
}
