package testsupport

import (
	"context"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/offsetstore"
)

// MustOpenStore opens an offsetstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *offsetstore.Store {
	t.Helper()

	store, err := offsetstore.Open(cfg, nil, nil)
	if err != nil {
		t.Fatalf("offsetstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedOffsets saves offsetMs for each song in order, oldest first.
func SeedOffsets(t testing.TB, store *offsetstore.Store, songIDs []string, offsetMs int) {
	t.Helper()

	for _, id := range songIDs {
		store.Save(context.Background(), id, offsetMs)
	}
}
