package alignment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"lyricsync/internal/textutil"
)

var (
	textKeys       = []string{"text", "word"}
	startKeys      = []string{"start_time", "startTime", "start"}
	endKeys        = []string{"end_time", "endTime", "end"}
	confidenceKeys = []string{"confidence", "score"}
)

// UnmarshalJSON accepts snake_case, camelCase and WhisperX field names.
// Missing or non-numeric times, and elements that are not objects, decode
// with NaN times so the record is rejected during aggregation instead of
// failing the whole document.
func (w *AlignedWord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*w = AlignedWord{StartTime: math.NaN(), EndTime: math.NaN()}
		return nil
	}
	var text any
	if raw, ok := lookupField(fields, textKeys); ok {
		_ = json.Unmarshal(raw, &text)
	}
	*w = AlignedWord{
		Text:      textutil.TextOf(text),
		StartTime: numberField(fields, startKeys),
		EndTime:   numberField(fields, endKeys),
	}
	if c := numberField(fields, confidenceKeys); !math.IsNaN(c) {
		w.Confidence = &c
	}
	return nil
}

func lookupField(fields map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, key := range keys {
		if raw, ok := fields[key]; ok {
			return raw, true
		}
	}
	return nil, false
}

func numberField(fields map[string]json.RawMessage, keys []string) float64 {
	raw, ok := lookupField(fields, keys)
	if !ok {
		return math.NaN()
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return math.NaN()
	}
	f, ok := v.(float64)
	if !ok {
		return math.NaN()
	}
	return f
}

type wordsDocument struct {
	Words    []AlignedWord `json:"words"`
	Segments []struct {
		Words []AlignedWord `json:"words"`
	} `json:"segments"`
}

// DecodeWords reads alignment records from a bare JSON array, an object with
// a "words" array, or an object with "segments" each holding "words".
func DecodeWords(r io.Reader) ([]AlignedWord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read alignment: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("alignment document is empty")
	}

	if data[0] == '[' {
		var words []AlignedWord
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("decode alignment array: %w", err)
		}
		return words, nil
	}

	var doc wordsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode alignment document: %w", err)
	}
	if len(doc.Words) > 0 {
		return doc.Words, nil
	}
	var words []AlignedWord
	for _, segment := range doc.Segments {
		words = append(words, segment.Words...)
	}
	return words, nil
}
