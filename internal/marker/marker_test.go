package marker

import "testing"

type item string

func (i item) Kind() Kind { return KindOf(string(i)) }

func TestIsMarker(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"verse marker", "**[Verse 1]**", true},
		{"chorus with whitespace", "  **[Chorus]**\t", true},
		{"bare label", "**Bridge**", true},
		{"empty inner", "****", true},
		{"plain lyric", "Hello world", false},
		{"bracket only", "[Verse 1]", false},
		{"single asterisks", "*[Verse]*", false},
		{"open only", "**[Verse]", false},
		{"close only", "[Verse]**", false},
		{"overlapping delimiters", "***", false},
		{"just delimiter", "**", false},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"emphasis mid-line", "I **love** you", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarker(tt.text); got != tt.want {
				t.Errorf("IsMarker(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if KindOf("**[Outro]**") != KindMarker {
		t.Error("expected marker kind")
	}
	if KindOf("la la la") != KindLyric {
		t.Error("expected lyric kind")
	}
	if KindMarker.String() != "marker" || KindLyric.String() != "lyric" {
		t.Errorf("unexpected kind strings: %s %s", KindMarker, KindLyric)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(" **[Verse 1]** "); got != "[Verse 1]" {
		t.Errorf("Label() = %q, want %q", got, "[Verse 1]")
	}
	if got := Label("  plain  "); got != "plain" {
		t.Errorf("Label() = %q, want %q", got, "plain")
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	items := []item{"**[Intro]**", "one", "two", "**[Chorus]**", "three"}

	markers, lyrics := Classify(items)

	wantMarkers := []item{"**[Intro]**", "**[Chorus]**"}
	wantLyrics := []item{"one", "two", "three"}
	if len(markers) != len(wantMarkers) {
		t.Fatalf("markers = %v, want %v", markers, wantMarkers)
	}
	for i := range markers {
		if markers[i] != wantMarkers[i] {
			t.Errorf("markers[%d] = %q, want %q", i, markers[i], wantMarkers[i])
		}
	}
	if len(lyrics) != len(wantLyrics) {
		t.Fatalf("lyrics = %v, want %v", lyrics, wantLyrics)
	}
	for i := range lyrics {
		if lyrics[i] != wantLyrics[i] {
			t.Errorf("lyrics[%d] = %q, want %q", i, lyrics[i], wantLyrics[i])
		}
	}
}

func TestFindNextNonMarker(t *testing.T) {
	items := []item{"**[Intro]**", "**[Verse]**", "hello", "**[Outro]**"}

	tests := []struct {
		name   string
		from   int
		want   int
		wantOK bool
	}{
		{"from first marker", 0, 2, true},
		{"from lyric", 2, 2, true},
		{"negative start", -3, 2, true},
		{"only markers remain", 3, 0, false},
		{"past end", 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindNextNonMarker(items, tt.from)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("FindNextNonMarker(%d) = (%d, %v), want (%d, %v)", tt.from, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHasMarkers(t *testing.T) {
	if HasMarkers([]item{"a", "b"}) {
		t.Error("expected no markers")
	}
	if !HasMarkers([]item{"a", "**[Bridge]**"}) {
		t.Error("expected markers")
	}
	if HasMarkers[item](nil) {
		t.Error("expected no markers for nil slice")
	}
}
