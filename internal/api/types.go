package api

import (
	"time"

	"lyricsync/internal/alignment"
	"lyricsync/internal/lookup"
	"lyricsync/internal/offset"
	"lyricsync/internal/offsetstore"
)

// AlignRequest is the body of POST /v1/align.
type AlignRequest struct {
	Words  []alignment.AlignedWord `json:"words"`
	Lyrics string                  `json:"lyrics"`
}

// VTTRequest is the body of POST /v1/vtt. When OffsetMs is omitted the
// remembered offset for SongID is used.
type VTTRequest struct {
	Cues     []alignment.LineCue `json:"cues"`
	OffsetMs *int                `json:"offset_ms,omitempty"`
	SongID   string              `json:"song_id,omitempty"`
	Style    string              `json:"style,omitempty"`
	Date     string              `json:"date,omitempty"`
}

// LookupRequest is the body of POST /v1/lookup.
type LookupRequest struct {
	Cues        []alignment.LineCue `json:"cues"`
	Time        float64             `json:"time"`
	OffsetMs    *int                `json:"offset_ms,omitempty"`
	SongID      string              `json:"song_id,omitempty"`
	SkipMarkers *bool               `json:"skip_markers,omitempty"`
}

// LookupResponse reports the active cue for one clock value.
type LookupResponse struct {
	Frame         lookup.Frame       `json:"frame"`
	Cue           *alignment.LineCue `json:"cue,omitempty"`
	States        []lookup.State     `json:"states"`
	OffsetMs      int                `json:"offset_ms"`
	OffsetDisplay string             `json:"offset_display"`
}

// OffsetEntry is the transport form of a remembered offset.
type OffsetEntry struct {
	SongID    string `json:"song_id"`
	OffsetMs  int    `json:"offset_ms"`
	Display   string `json:"display"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// OffsetUpdate is the body of PUT /v1/offsets/{songID}. OffsetMs sets the
// value outright; otherwise DeltaMs nudges the current one.
type OffsetUpdate struct {
	OffsetMs *int `json:"offset_ms,omitempty"`
	DeltaMs  int  `json:"delta_ms,omitempty"`
}

// OffsetList is the body of GET /v1/offsets.
type OffsetList struct {
	Count   int           `json:"count"`
	Entries []OffsetEntry `json:"entries"`
}

// ErrorResponse is returned with every 4xx and 5xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// FromEntry converts a store entry for transport.
func FromEntry(entry offsetstore.Entry) OffsetEntry {
	out := OffsetEntry{
		SongID:   entry.SongID,
		OffsetMs: entry.OffsetMs,
		Display:  offset.FormatDisplay(entry.OffsetMs),
	}
	if entry.UpdatedAt > 0 {
		out.UpdatedAt = time.UnixMilli(entry.UpdatedAt).UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return out
}

// FromEntries converts a slice of store entries, never returning nil.
func FromEntries(entries []offsetstore.Entry) []OffsetEntry {
	out := make([]OffsetEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, FromEntry(entry))
	}
	return out
}
