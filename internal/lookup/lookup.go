// Package lookup answers "which line is being sung now" for live
// highlighting. Every query is a binary search over a sorted, non-overlapping
// sequence of timed entities, after shifting the playback clock by the
// user's offset.
package lookup

import (
	"fmt"
	"math"
	"sort"

	"lyricsync/internal/marker"
	"lyricsync/internal/offset"
)

// Span is a timed entity. Implementations must be sorted by start time and
// must not overlap.
type Span interface {
	Bounds() (start, end float64)
}

// Entity is a Span that also reports whether it is a section marker.
type Entity interface {
	Span
	marker.Classified
}

// State is the highlighting state of an entity at a point in time.
type State int

const (
	Upcoming State = iota
	Current
	Completed
)

func (s State) String() string {
	switch s {
	case Current:
		return "current"
	case Completed:
		return "completed"
	default:
		return "upcoming"
	}
}

// MarshalText renders the state name for JSON responses.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "upcoming":
		*s = Upcoming
	case "current":
		*s = Current
	case "completed":
		*s = Completed
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}

// Adjusted applies offsetMs, clamped, to the playback clock.
func Adjusted(current float64, offsetMs int) float64 {
	return current + offset.Seconds(offset.Clamp(offsetMs))
}

// StateAt classifies span against an already adjusted time. Both bounds are
// inclusive for Current.
func StateAt(span Span, adjusted float64) State {
	start, end := span.Bounds()
	switch {
	case adjusted < start:
		return Upcoming
	case adjusted > end:
		return Completed
	default:
		return Current
	}
}

// States returns the state of every item at current shifted by offsetMs.
func States[T Span](items []T, current float64, offsetMs int) []State {
	if len(items) == 0 {
		return nil
	}
	adjusted := Adjusted(current, offsetMs)
	out := make([]State, len(items))
	for i, item := range items {
		out[i] = StateAt(item, adjusted)
	}
	return out
}

// ActiveIndex returns the item containing the adjusted time, or the item
// preceding it when the time falls in a gap. When two items share the
// boundary the earlier one wins. Before the first item, or for a NaN time,
// nothing is active. Items must be ordered by both start and end.
func ActiveIndex[T Span](items []T, current float64, offsetMs int) (int, bool) {
	return activeAt(items, Adjusted(current, offsetMs))
}

func activeAt[T Span](items []T, adjusted float64) (int, bool) {
	if len(items) == 0 || math.IsNaN(adjusted) {
		return -1, false
	}
	// First item still running at adjusted. Taking the first one lets the
	// earlier item win a shared boundary even past zero-width items.
	i := sort.Search(len(items), func(i int) bool {
		_, end := items[i].Bounds()
		return end >= adjusted
	})
	if i < len(items) {
		if start, _ := items[i].Bounds(); start <= adjusted {
			return i, true
		}
	}
	if i == 0 {
		return -1, false
	}
	return i - 1, true
}

// ActiveNonMarkerIndex is ActiveIndex that advances past section markers to
// the next lyric. It reports false when only markers remain.
func ActiveNonMarkerIndex[T Entity](items []T, current float64, offsetMs int) (int, bool) {
	idx, ok := ActiveIndex(items, current, offsetMs)
	if !ok {
		return -1, false
	}
	if items[idx].Kind() != marker.KindMarker {
		return idx, true
	}
	return marker.FindNextNonMarker(items, idx)
}
