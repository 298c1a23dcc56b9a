package alignment

import (
	"math"
	"strings"

	"lyricsync/internal/marker"
	"lyricsync/internal/textutil"
)

// token is an accepted record reduced to what matching needs.
type token struct {
	norm  string
	start float64
	end   float64
}

type span struct {
	start float64
	end   float64
}

// Aggregate groups words into one cue per matched lyric line. Empty input
// yields nil.
func Aggregate(words []AlignedWord, lyrics string) []LineCue {
	return AggregateDetailed(words, lyrics).Cues
}

// AggregateDetailed is Aggregate with diagnostics for every skipped line and
// rejected record.
func AggregateDetailed(words []AlignedWord, lyrics string) Result {
	var result Result
	lines := textutil.SplitLines(lyrics)
	if len(lines) == 0 {
		return result
	}

	tokens, rejected := filterWords(words)
	result.Rejected = rejected

	cursor := 0
	for idx, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineTokens := textutil.Tokenize(line)
		if len(lineTokens) == 0 {
			result.Skipped = append(result.Skipped, SkippedLine{Index: idx, Text: line, Reason: ReasonNoTokens, Cursor: cursor})
			continue
		}
		sp, next, ok := matchLine(tokens, lineTokens, cursor)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedLine{Index: idx, Text: line, Reason: ReasonNoMatch, Cursor: cursor})
			continue
		}
		cursor = next
		result.Cues = append(result.Cues, LineCue{
			Index:     idx,
			Text:      line,
			StartTime: sp.start,
			EndTime:   sp.end,
			IsMarker:  marker.IsMarker(line),
		})
	}
	return result
}

// filterWords drops malformed records and normalizes the rest.
func filterWords(words []AlignedWord) ([]token, []RejectedWord) {
	if len(words) == 0 {
		return nil, nil
	}
	tokens := make([]token, 0, len(words))
	var rejected []RejectedWord
	lastStart := math.Inf(-1)
	for i, w := range words {
		reason := validate(w, lastStart)
		if reason != "" {
			rejected = append(rejected, RejectedWord{Index: i, Text: w.Text, Reason: reason})
			continue
		}
		norm := textutil.Normalize(w.Text)
		if norm == "" {
			rejected = append(rejected, RejectedWord{Index: i, Text: w.Text, Reason: ReasonNoAlnum})
			continue
		}
		lastStart = w.StartTime
		tokens = append(tokens, token{norm: norm, start: w.StartTime, end: w.EndTime})
	}
	return tokens, rejected
}

func validate(w AlignedWord, lastStart float64) string {
	switch {
	case !validTime(w.StartTime) || !validTime(w.EndTime):
		return ReasonInvalidTime
	case w.EndTime < w.StartTime:
		return ReasonEndBefore
	case strings.TrimSpace(w.Text) == "":
		return ReasonEmptyText
	case w.StartTime < lastStart:
		return ReasonOutOfOrder
	}
	return ""
}

func validTime(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// matchLine matches every lyric token in order starting exactly at cursor.
// On failure the returned cursor is the one passed in.
func matchLine(words []token, lyric []string, cursor int) (span, int, bool) {
	if len(lyric) == 0 || cursor >= len(words) {
		return span{}, cursor, false
	}
	pos := cursor
	sp := span{start: words[cursor].start}
	for _, want := range lyric {
		next, ok := matchToken(words, want, pos)
		if !ok {
			return span{}, cursor, false
		}
		sp.end = words[next-1].end
		pos = next
	}
	return sp, pos, true
}

// matchToken concatenates records from pos until they spell want, giving up
// as soon as the concatenation stops being a prefix of it.
func matchToken(words []token, want string, pos int) (int, bool) {
	var acc strings.Builder
	for i := pos; i < len(words); i++ {
		acc.WriteString(words[i].norm)
		got := acc.String()
		if got == want {
			return i + 1, true
		}
		if !strings.HasPrefix(want, got) {
			return pos, false
		}
	}
	return pos, false
}
