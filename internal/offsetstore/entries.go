package offsetstore

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"lyricsync/internal/offset"
)

// Entry is one remembered offset.
type Entry struct {
	SongID    string `json:"song_id"`
	OffsetMs  int    `json:"offset_ms"`
	UpdatedAt int64  `json:"updated_at"`
}

// record is the persisted value shape.
type record struct {
	Offset    int   `json:"offset"`
	UpdatedAt int64 `json:"updatedAt"`
}

// EvictLRU returns a copy of entries reduced to at most capacity items by
// dropping the lowest UpdatedAt first. Ties go to the smaller song ID.
func EvictLRU(entries map[string]Entry, capacity int) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for id, entry := range entries {
		out[id] = entry
	}
	if capacity < 0 {
		capacity = 0
	}
	excess := len(out) - capacity
	if excess <= 0 {
		return out
	}
	for _, entry := range oldestFirst(out)[:excess] {
		delete(out, entry.SongID)
	}
	return out
}

func oldestFirst(entries map[string]Entry) []Entry {
	list := make([]Entry, 0, len(entries))
	for id, entry := range entries {
		entry.SongID = id
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].UpdatedAt != list[j].UpdatedAt {
			return list[i].UpdatedAt < list[j].UpdatedAt
		}
		return list[i].SongID < list[j].SongID
	})
	return list
}

func encodeEntries(entries map[string]Entry) ([]byte, error) {
	records := make(map[string]record, len(entries))
	for id, entry := range entries {
		records[id] = record{Offset: entry.OffsetMs, UpdatedAt: entry.UpdatedAt}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal offsets: %w", err)
	}
	return data, nil
}

// decodeEntries parses the persisted object. Values of the wrong shape are
// dropped individually; a document that is not an object is an error.
func decodeEntries(data []byte) (map[string]Entry, int, error) {
	entries := make(map[string]Entry)
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, 0, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return entries, 0, fmt.Errorf("parse offsets: %w", err)
	}
	dropped := 0
	for id, value := range raw {
		if strings.TrimSpace(id) == "" {
			dropped++
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(value, &fields); err != nil {
			dropped++
			continue
		}
		ms, ok := finite(fields["offset"])
		if !ok {
			dropped++
			continue
		}
		updated, _ := finite(fields["updatedAt"])
		entries[id] = Entry{
			SongID:    id,
			OffsetMs:  int(math.Round(math.Max(offset.MinMs, math.Min(offset.MaxMs, ms)))),
			UpdatedAt: int64(updated),
		}
	}
	return entries, dropped, nil
}

func finite(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
