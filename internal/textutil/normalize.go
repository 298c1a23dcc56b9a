package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips combining marks and drops every rune that is
// not a letter or digit. "We're" and "WERE" both normalize to "were";
// "Café!" normalizes to "cafe". Empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded := cases.Fold().String(s)
	// Casers and transformers are stateful, so both are built per call.
	stripped, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), folded)
	if err != nil {
		stripped = folded
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits a lyric line on whitespace and normalizes each token.
// Tokens that normalize to nothing (a lone "-" or "&") are dropped.
func Tokenize(line string) []string {
	fields := strings.Fields(line)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if token := Normalize(field); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// SplitLines splits text on "\n", "\r\n" and lone "\r" line breaks.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// TextOf returns v when it is a string and "" for anything else, including
// nil. Decoders use it for loosely typed text fields.
func TextOf(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
