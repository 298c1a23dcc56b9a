// Package vtt renders line cues as WebVTT caption files.
package vtt

import (
	"fmt"
	"math"
	"strings"
	"time"

	"lyricsync/internal/alignment"
	"lyricsync/internal/offset"
	"lyricsync/internal/textutil"
)

const header = "WEBVTT"

// Generate renders cues as a WebVTT document with offsetMs applied after
// clamping. Marker cues are left out and negative times are clamped to zero.
func Generate(cues []alignment.LineCue, offsetMs int) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, cue := range offset.Apply(cues, offset.Clamp(offsetMs)) {
		if cue.IsMarker {
			continue
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s --> %s\n", FormatTimestamp(cue.StartTime), FormatTimestamp(cue.EndTime))
		sb.WriteString(cueText(cue.Text))
		sb.WriteString("\n")
	}
	return sb.String()
}

// cueText keeps a cue payload on one line and free of the timing arrow.
func cueText(text string) string {
	text = strings.Join(strings.Fields(strings.Join(textutil.SplitLines(text), " ")), " ")
	return strings.ReplaceAll(text, "-->", "->")
}

// FormatTimestamp renders seconds as MM:SS.mmm, or HH:MM:SS.mmm from one
// hour on, rounded to the nearest millisecond.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	msTotal := int64(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// Filename returns "song-<slug>-<yyyy-mm-dd>.vtt". A zero date becomes
// "unknown-date".
func Filename(style string, date time.Time) string {
	stamp := "unknown-date"
	if !date.IsZero() {
		stamp = date.Format(time.DateOnly)
	}
	return fmt.Sprintf("song-%s-%s.vtt", textutil.Slug(style), stamp)
}

// ParseDate accepts RFC 3339 timestamps or YYYY-MM-DD dates. Blank input
// yields the zero time without error.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
