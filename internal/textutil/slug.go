package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug converts a free-form name into a lowercase filename token.
// ASCII letters and digits are kept, accents are dropped, and every other run
// of characters collapses into a single dash. Returns "untitled" when nothing
// usable remains.
func Slug(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "untitled"
	}
	if decomposed, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), value); err == nil {
		value = decomposed
	}
	var b strings.Builder
	pendingDash := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		default:
			pendingDash = true
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
