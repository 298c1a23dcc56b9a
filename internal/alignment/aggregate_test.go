package alignment

import (
	"math"
	"testing"
)

func w(text string, start, end float64) AlignedWord {
	return AlignedWord{Text: text, StartTime: start, EndTime: end}
}

func TestAggregateSingleLine(t *testing.T) {
	words := []AlignedWord{w("Hello", 0, 0.5), w("world", 0.6, 1.0)}
	cues := Aggregate(words, "Hello world")
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d: %+v", len(cues), cues)
	}
	got := cues[0]
	if got.Text != "Hello world" || got.StartTime != 0 || got.EndTime != 1.0 || got.Index != 0 || got.IsMarker {
		t.Fatalf("unexpected cue: %+v", got)
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	if cues := Aggregate(nil, ""); cues != nil {
		t.Fatalf("expected nil, got %+v", cues)
	}
	if cues := Aggregate(nil, "Hello world"); cues != nil {
		t.Fatalf("expected nil without words, got %+v", cues)
	}
	if cues := Aggregate([]AlignedWord{w("hello", 0, 1)}, ""); cues != nil {
		t.Fatalf("expected nil without lyrics, got %+v", cues)
	}
}

func TestAggregateJoinsSplitContractions(t *testing.T) {
	words := []AlignedWord{
		w("we", 0, 0.2),
		w("'re", 0.2, 0.4),
		w("here", 0.5, 0.9),
	}
	cues := Aggregate(words, "We're here!")
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %+v", cues)
	}
	if cues[0].StartTime != 0 || cues[0].EndTime != 0.9 {
		t.Fatalf("unexpected span: %+v", cues[0])
	}
	if cues[0].Text != "We're here!" {
		t.Fatalf("expected verbatim text, got %q", cues[0].Text)
	}
}

func TestAggregateSkipsUnmatchedLineWithoutMovingCursor(t *testing.T) {
	words := []AlignedWord{
		w("first", 0, 0.5),
		w("line", 0.5, 1),
		w("third", 2, 2.5),
		w("line", 2.5, 3),
	}
	lyrics := "first line\nnot sung at all\nthird line"
	res := AggregateDetailed(words, lyrics)
	if len(res.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %+v", res.Cues)
	}
	if res.Cues[0].Index != 0 || res.Cues[1].Index != 2 {
		t.Fatalf("expected source line indexes 0 and 2, got %d and %d", res.Cues[0].Index, res.Cues[1].Index)
	}
	if res.Cues[1].StartTime != 2 || res.Cues[1].EndTime != 3 {
		t.Fatalf("unexpected third line span: %+v", res.Cues[1])
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("expected 1 skipped line, got %+v", res.Skipped)
	}
	skipped := res.Skipped[0]
	if skipped.Index != 1 || skipped.Reason != ReasonNoMatch || skipped.Cursor != 2 {
		t.Fatalf("unexpected skip diagnostic: %+v", skipped)
	}
}

func TestAggregateRepeatedLinesConsumeDistinctWords(t *testing.T) {
	words := []AlignedWord{
		w("la", 0, 0.5), w("la", 0.5, 1),
		w("la", 5, 5.5), w("la", 5.5, 6),
	}
	cues := Aggregate(words, "La la\nLa la\nLa la")
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %+v", cues)
	}
	if cues[0].StartTime != 0 || cues[1].StartTime != 5 {
		t.Fatalf("expected second cue to use later words, got %+v", cues)
	}
	for i := 1; i < len(cues); i++ {
		if cues[i].StartTime < cues[i-1].EndTime {
			t.Fatalf("cues overlap: %+v", cues)
		}
	}
}

func TestAggregatePartialPrefixFails(t *testing.T) {
	// "wer" is a prefix of "were" but "x" breaks the concatenation.
	words := []AlignedWord{w("wer", 0, 0.2), w("x", 0.2, 0.3)}
	res := AggregateDetailed(words, "were")
	if len(res.Cues) != 0 {
		t.Fatalf("expected no cues, got %+v", res.Cues)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != ReasonNoMatch {
		t.Fatalf("expected one no-match skip, got %+v", res.Skipped)
	}
}

func TestAggregateIgnoresBlankAndPunctuationLines(t *testing.T) {
	words := []AlignedWord{w("hi", 0, 1)}
	res := AggregateDetailed(words, "\r\n - & -\r\nhi\r\n")
	if len(res.Cues) != 1 || res.Cues[0].Index != 2 || res.Cues[0].Text != "hi" {
		t.Fatalf("unexpected cues: %+v", res.Cues)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != ReasonNoTokens {
		t.Fatalf("expected punctuation line reported as unmatchable, got %+v", res.Skipped)
	}
}

func TestAggregateFlagsMarkers(t *testing.T) {
	words := []AlignedWord{
		w("chorus", 0, 1),
		w("sing", 1, 2),
	}
	cues := Aggregate(words, "**[Chorus]**\nSing")
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %+v", cues)
	}
	if !cues[0].IsMarker || cues[1].IsMarker {
		t.Fatalf("unexpected marker flags: %+v", cues)
	}
}

func TestAggregatePreservesUnicodeDisplayText(t *testing.T) {
	words := []AlignedWord{w("café", 0, 0.4), w("Noël", 0.5, 1)}
	cues := Aggregate(words, "Cafe NOËL")
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %+v", cues)
	}
	if cues[0].Text != "Cafe NOËL" {
		t.Fatalf("display text changed: %q", cues[0].Text)
	}
}

func TestAggregateRejectsMalformedRecords(t *testing.T) {
	words := []AlignedWord{
		w("hello", 0, 0.5),
		w("bogus", math.NaN(), 1),
		w("bogus", 1, math.Inf(1)),
		w("bogus", -1, 1),
		w("bogus", 2, 1),
		w("   ", 0.6, 0.7),
		w("...", 0.6, 0.7),
		w("world", 0.6, 1.0),
		w("late", 0.1, 0.2),
	}
	res := AggregateDetailed(words, "Hello world")
	if len(res.Cues) != 1 || res.Cues[0].EndTime != 1.0 {
		t.Fatalf("expected malformed records to be ignored, got %+v", res.Cues)
	}

	wantReasons := []string{
		ReasonInvalidTime,
		ReasonInvalidTime,
		ReasonInvalidTime,
		ReasonEndBefore,
		ReasonEmptyText,
		ReasonNoAlnum,
		ReasonOutOfOrder,
	}
	if len(res.Rejected) != len(wantReasons) {
		t.Fatalf("expected %d rejections, got %+v", len(wantReasons), res.Rejected)
	}
	for i, want := range wantReasons {
		if res.Rejected[i].Reason != want {
			t.Errorf("rejection %d: reason %q, want %q", i, res.Rejected[i].Reason, want)
		}
	}
	if res.Rejected[6].Index != 8 {
		t.Fatalf("expected out-of-order record index 8, got %d", res.Rejected[6].Index)
	}
}

func TestMatchLineLeavesCursorOnFailure(t *testing.T) {
	tokens := []token{{norm: "a", start: 0, end: 1}, {norm: "b", start: 1, end: 2}}
	if _, next, ok := matchLine(tokens, []string{"a", "c"}, 0); ok || next != 0 {
		t.Fatalf("expected failure at cursor 0, got next=%d ok=%v", next, ok)
	}
	sp, next, ok := matchLine(tokens, []string{"b"}, 1)
	if !ok || next != 2 || sp.start != 1 || sp.end != 2 {
		t.Fatalf("unexpected match: span=%+v next=%d ok=%v", sp, next, ok)
	}
	if _, next, ok := matchLine(tokens, []string{"a"}, 2); ok || next != 2 {
		t.Fatalf("expected failure past end, got next=%d ok=%v", next, ok)
	}
}

func TestCueOrderingIsMonotonic(t *testing.T) {
	words := []AlignedWord{
		w("one", 0, 1), w("two", 1, 2), w("three", 2, 3), w("four", 3, 4),
	}
	cues := Aggregate(words, "one\ntwo\nthree four")
	for i, c := range cues {
		if c.StartTime > c.EndTime {
			t.Fatalf("cue %d has start after end: %+v", i, c)
		}
		if i > 0 && c.StartTime < cues[i-1].StartTime {
			t.Fatalf("cues out of order: %+v", cues)
		}
	}
	if len(cues) != 3 || cues[2].EndTime != 4 {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}
