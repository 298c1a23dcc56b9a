package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lyricsync/internal/alignment"
	"lyricsync/internal/lookup"
	"lyricsync/internal/offset"
	"lyricsync/internal/offsetstore"
	"lyricsync/internal/vtt"
)

// ResolveOffset returns explicit (clamped) when set, otherwise the offset
// remembered for songID, otherwise 0.
func ResolveOffset(ctx context.Context, store *offsetstore.Store, songID string, explicit *int) int {
	if explicit != nil {
		return offset.Clamp(*explicit)
	}
	if store == nil || strings.TrimSpace(songID) == "" {
		return 0
	}
	return store.Load(ctx, songID)
}

// Lookup evaluates cues at the given clock value.
func Lookup(cues []alignment.LineCue, at float64, offsetMs int, skipMarkers bool) LookupResponse {
	tracker := lookup.NewTracker(cues, offsetMs, skipMarkers)
	frame := tracker.At(at)
	resp := LookupResponse{
		Frame:         frame,
		States:        tracker.States(at),
		OffsetMs:      tracker.Offset(),
		OffsetDisplay: offset.FormatDisplay(tracker.Offset()),
	}
	if resp.States == nil {
		resp.States = []lookup.State{}
	}
	if frame.Found {
		cue := cues[frame.Index]
		resp.Cue = &cue
	}
	return resp
}

// RenderVTT returns the suggested filename and WebVTT body for cues.
func RenderVTT(cues []alignment.LineCue, offsetMs int, style, date string) (string, string, error) {
	parsed, err := vtt.ParseDate(date)
	if err != nil {
		return "", "", err
	}
	return vtt.Filename(style, parsed), vtt.Generate(cues, offset.Clamp(offsetMs)), nil
}

// ApplyOffsetUpdate stores the result of update for songID and returns it.
func ApplyOffsetUpdate(ctx context.Context, store *offsetstore.Store, songID string, update OffsetUpdate) (int, error) {
	if store == nil {
		return 0, errors.New("offset store is not available")
	}
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return 0, errors.New("song id is required")
	}
	var next int
	switch {
	case update.OffsetMs != nil:
		next = offset.Clamp(*update.OffsetMs)
	case update.DeltaMs != 0:
		next = offset.Nudge(store.Load(ctx, songID), update.DeltaMs)
	default:
		return 0, errors.New("offset_ms or delta_ms is required")
	}
	store.Save(ctx, songID, next)
	return next, nil
}

// RemoveOffsetEntryByNumber removes an entry using the 1-based numbering
// from offset list output.
func RemoveOffsetEntryByNumber(ctx context.Context, store *offsetstore.Store, entryNum int) (offsetstore.Entry, error) {
	if store == nil {
		return offsetstore.Entry{}, errors.New("offset store is not available")
	}
	if entryNum < 1 {
		return offsetstore.Entry{}, fmt.Errorf("invalid entry number: %d (must be a positive integer)", entryNum)
	}

	entries := store.List(ctx)
	if entryNum > len(entries) {
		return offsetstore.Entry{}, fmt.Errorf("entry number %d out of range (only %d entries exist)", entryNum, len(entries))
	}

	entry := entries[entryNum-1]
	if !store.Remove(ctx, entry.SongID) {
		return offsetstore.Entry{}, fmt.Errorf("remove offset for %q failed", entry.SongID)
	}
	return entry, nil
}
