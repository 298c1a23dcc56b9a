package api

import (
	"context"
	"math"
	"testing"

	"lyricsync/internal/alignment"
	"lyricsync/internal/offsetstore"
)

func TestResolveOffset(t *testing.T) {
	ctx := context.Background()
	store := offsetstore.New(offsetstore.NewMemoryStorage())
	store.Save(ctx, "song1", 300)

	explicit := 9000
	if got := ResolveOffset(ctx, store, "song1", &explicit); got != 2000 {
		t.Fatalf("explicit offset = %d, want 2000", got)
	}
	if got := ResolveOffset(ctx, store, "song1", nil); got != 300 {
		t.Fatalf("stored offset = %d, want 300", got)
	}
	if got := ResolveOffset(ctx, nil, "song1", nil); got != 0 {
		t.Fatalf("nil store offset = %d, want 0", got)
	}
	if got := ResolveOffset(ctx, store, "", nil); got != 0 {
		t.Fatalf("blank song offset = %d, want 0", got)
	}
}

func TestLookupBeforeFirstCue(t *testing.T) {
	cues := []alignment.LineCue{{Text: "a", StartTime: 5, EndTime: 6}}
	resp := Lookup(cues, 1, 0, true)
	if resp.Frame.Found || resp.Cue != nil || resp.Frame.Index != -1 {
		t.Fatalf("expected no active cue, got %+v", resp)
	}
	if resp.OffsetDisplay != "0ms" {
		t.Fatalf("unexpected display %q", resp.OffsetDisplay)
	}
	if empty := Lookup(nil, 1, 0, true); empty.States == nil {
		t.Fatal("expected non-nil states")
	}
}

func TestRemoveOffsetEntryByNumber(t *testing.T) {
	ctx := context.Background()
	store := offsetstore.New(offsetstore.NewMemoryStorage())
	store.Save(ctx, "older", 10)
	store.Save(ctx, "newer", 20)

	removed, err := RemoveOffsetEntryByNumber(ctx, store, 1)
	if err != nil {
		t.Fatalf("RemoveOffsetEntryByNumber: %v", err)
	}
	if removed.SongID != "newer" {
		t.Fatalf("removed song = %q, want newer", removed.SongID)
	}
	if count := store.Count(ctx); count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if _, err := RemoveOffsetEntryByNumber(ctx, store, 0); err == nil {
		t.Fatal("expected error for entry 0")
	}
	if _, err := RemoveOffsetEntryByNumber(ctx, store, 5); err == nil {
		t.Fatal("expected error for out of range entry")
	}
	if _, err := RemoveOffsetEntryByNumber(ctx, nil, 1); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestApplyOffsetUpdateClampsAtBounds(t *testing.T) {
	ctx := context.Background()
	store := offsetstore.New(offsetstore.NewMemoryStorage())
	for i := 0; i < 50; i++ {
		if _, err := ApplyOffsetUpdate(ctx, store, "song", OffsetUpdate{DeltaMs: 50}); err != nil {
			t.Fatalf("ApplyOffsetUpdate: %v", err)
		}
	}
	if got := store.Load(ctx, "song"); got != 2000 {
		t.Fatalf("offset = %d, want 2000", got)
	}
	if _, err := ApplyOffsetUpdate(ctx, store, " ", OffsetUpdate{DeltaMs: 50}); err == nil {
		t.Fatal("expected error for blank song id")
	}
}

func TestApplyOffsetUpdateExtremeDeltas(t *testing.T) {
	ctx := context.Background()
	store := offsetstore.New(offsetstore.NewMemoryStorage())
	store.Save(ctx, "song", 1000)

	tests := []struct {
		delta int
		want  int
	}{
		{math.MaxInt - 500, 2000},
		{math.MinInt, -2000},
		{math.MaxInt, 2000},
	}
	for _, tt := range tests {
		got, err := ApplyOffsetUpdate(ctx, store, "song", OffsetUpdate{DeltaMs: tt.delta})
		if err != nil {
			t.Fatalf("ApplyOffsetUpdate(%d): %v", tt.delta, err)
		}
		if got != tt.want {
			t.Fatalf("delta %d: got %d, want %d", tt.delta, got, tt.want)
		}
	}
}
