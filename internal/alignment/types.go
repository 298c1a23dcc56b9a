package alignment

import (
	"lyricsync/internal/marker"
)

// AlignedWord is one timed token produced by an external aligner.
// Times are in seconds.
type AlignedWord struct {
	Text       string   `json:"text"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Kind classifies the word text.
func (w AlignedWord) Kind() marker.Kind { return marker.KindOf(w.Text) }

// Bounds returns the start and end time in seconds.
func (w AlignedWord) Bounds() (float64, float64) { return w.StartTime, w.EndTime }

// Shift returns a copy moved by seconds.
func (w AlignedWord) Shift(seconds float64) AlignedWord {
	w.StartTime += seconds
	w.EndTime += seconds
	return w
}

// LineCue is a lyric line with the time span of the records it consumed.
type LineCue struct {
	// Index is the zero-based line number within the source lyric text.
	Index     int     `json:"index"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	IsMarker  bool    `json:"is_marker"`
}

// Kind reports the precomputed marker flag.
func (c LineCue) Kind() marker.Kind {
	if c.IsMarker {
		return marker.KindMarker
	}
	return marker.KindLyric
}

// Bounds returns the start and end time in seconds.
func (c LineCue) Bounds() (float64, float64) { return c.StartTime, c.EndTime }

// Shift returns a copy moved by seconds.
func (c LineCue) Shift(seconds float64) LineCue {
	c.StartTime += seconds
	c.EndTime += seconds
	return c
}

// Reasons attached to diagnostics.
const (
	ReasonNoTokens    = "no matchable tokens"
	ReasonNoMatch     = "no match at cursor"
	ReasonInvalidTime = "invalid time"
	ReasonEndBefore   = "end before start"
	ReasonEmptyText   = "empty text"
	ReasonNoAlnum     = "text has no letters or digits"
	ReasonOutOfOrder  = "start earlier than previous record"
)

// SkippedLine records a non-blank lyric line that produced no cue.
type SkippedLine struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
	// Cursor is the record position the line was tried at.
	Cursor int `json:"cursor"`
}

// RejectedWord records an alignment record excluded before matching.
type RejectedWord struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Result carries cues plus diagnostics.
type Result struct {
	Cues     []LineCue      `json:"cues"`
	Skipped  []SkippedLine  `json:"skipped,omitempty"`
	Rejected []RejectedWord `json:"rejected,omitempty"`
}
