package marker

import "strings"

const delimiter = "**"

// Kind tags a piece of text as a lyric line or a section marker.
type Kind int

const (
	// KindLyric is ordinary sung text.
	KindLyric Kind = iota
	// KindMarker is a structural label such as "**[Chorus]**".
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	default:
		return "lyric"
	}
}

// Classified is implemented by anything that can report its Kind.
type Classified interface {
	Kind() Kind
}

// IsMarker reports whether the trimmed text is fully wrapped by a
// double-asterisk delimiter on each side.
func IsMarker(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2*len(delimiter) {
		return false
	}
	return strings.HasPrefix(trimmed, delimiter) && strings.HasSuffix(trimmed, delimiter)
}

// KindOf returns the Kind of the given text.
func KindOf(text string) Kind {
	if IsMarker(text) {
		return KindMarker
	}
	return KindLyric
}

// Label strips the delimiters from a marker, returning "[Verse 1]" for
// "**[Verse 1]**". Non-marker text is returned trimmed.
func Label(text string) string {
	trimmed := strings.TrimSpace(text)
	if !IsMarker(trimmed) {
		return trimmed
	}
	inner := trimmed[len(delimiter) : len(trimmed)-len(delimiter)]
	return strings.TrimSpace(inner)
}

// Classify partitions items into markers and lyrics, preserving the
// relative order inside each partition.
func Classify[T Classified](items []T) (markers, lyrics []T) {
	for _, item := range items {
		if item.Kind() == KindMarker {
			markers = append(markers, item)
			continue
		}
		lyrics = append(lyrics, item)
	}
	return markers, lyrics
}

// FindNextNonMarker returns the first non-marker index at or after from.
// The boolean is false when only markers remain.
func FindNextNonMarker[T Classified](items []T, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(items); i++ {
		if items[i].Kind() != KindMarker {
			return i, true
		}
	}
	return 0, false
}

// HasMarkers reports whether any item is a marker.
func HasMarkers[T Classified](items []T) bool {
	for _, item := range items {
		if item.Kind() == KindMarker {
			return true
		}
	}
	return false
}
