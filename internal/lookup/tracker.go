package lookup

import (
	"lyricsync/internal/offset"
)

// Frame is the highlighting answer for one clock tick.
type Frame struct {
	Index int   `json:"index"`
	Found bool  `json:"found"`
	State State `json:"state"`
	// Adjusted is the clock value after the offset was applied.
	Adjusted float64 `json:"adjusted"`
}

// Tracker binds a cue sequence to an offset and marker-skipping preference.
type Tracker[T Entity] struct {
	items       []T
	offsetMs    int
	skipMarkers bool
}

// NewTracker returns a Tracker over items. The offset is clamped.
func NewTracker[T Entity](items []T, offsetMs int, skipMarkers bool) *Tracker[T] {
	return &Tracker[T]{items: items, offsetMs: offset.Clamp(offsetMs), skipMarkers: skipMarkers}
}

// Offset returns the current offset in milliseconds.
func (t *Tracker[T]) Offset() int { return t.offsetMs }

// SetOffset replaces the offset, clamping it.
func (t *Tracker[T]) SetOffset(ms int) { t.offsetMs = offset.Clamp(ms) }

// Len returns the number of tracked items.
func (t *Tracker[T]) Len() int { return len(t.items) }

// At returns the frame for the playback clock value current.
func (t *Tracker[T]) At(current float64) Frame {
	frame := Frame{Index: -1, Adjusted: Adjusted(current, t.offsetMs)}
	var (
		idx int
		ok  bool
	)
	if t.skipMarkers {
		idx, ok = ActiveNonMarkerIndex(t.items, current, t.offsetMs)
	} else {
		idx, ok = ActiveIndex(t.items, current, t.offsetMs)
	}
	if !ok {
		return frame
	}
	frame.Index = idx
	frame.Found = true
	frame.State = StateAt(t.items[idx], frame.Adjusted)
	return frame
}

// States returns per-item states for current.
func (t *Tracker[T]) States(current float64) []State {
	return States(t.items, current, t.offsetMs)
}
