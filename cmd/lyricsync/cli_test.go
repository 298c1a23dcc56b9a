package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricsync/internal/alignment"
	"lyricsync/internal/api"
	"lyricsync/internal/config"
	"lyricsync/internal/lookup"
)

func TestAlignCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"align"}, env.inputs()...), env.configPath)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	requireContains(t, out, "hello world")
	requireContains(t, out, "00:02.000")
	requireContains(t, out, "Skipped 1 lines")
	requireContains(t, out, "missing words")
}

func TestAlignCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"align", "--json"}, env.inputs()...), env.configPath)
	if err != nil {
		t.Fatalf("align --json: %v", err)
	}
	var result alignment.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %+v", result.Cues)
	}
	if result.Cues[1].Text != "second line" || result.Cues[1].StartTime != 2 || result.Cues[1].EndTime != 4 {
		t.Fatalf("unexpected second cue: %+v", result.Cues[1])
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Index != 2 {
		t.Fatalf("unexpected skipped lines: %+v", result.Skipped)
	}
}

func TestAlignCommandRequiresInputs(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"align", "--lyrics", env.lyricsPath}, env.configPath); err == nil {
		t.Fatal("expected error without --words")
	}
	_, _, err := runCLI(t, []string{"align", "--words", "-", "--lyrics", "-"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "stdin") {
		t.Fatalf("expected stdin conflict error, got %v", err)
	}
}

func TestVTTCommandStdout(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"vtt", "--offset", "500"}, env.inputs()...), env.configPath)
	if err != nil {
		t.Fatalf("vtt: %v", err)
	}
	if !strings.HasPrefix(out, "WEBVTT\n") {
		t.Fatalf("missing header: %q", out)
	}
	requireContains(t, out, "00:00.500 --> 00:02.500\nhello world\n")
	requireContains(t, out, "00:02.500 --> 00:04.500\nsecond line\n")
}

func TestVTTCommandWritesIntoDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := filepath.Join(env.baseDir, "captions")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	args := append([]string{"vtt", "--json", "--style", "Power Ballad", "--date", "2024-05-01", "--out", outDir}, env.inputs()...)
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("vtt: %v", err)
	}
	var res vttResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.Filename != "song-power-ballad-2024-05-01.vtt" || res.Cues != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, err := os.ReadFile(filepath.Join(outDir, res.Filename))
	if err != nil {
		t.Fatalf("read vtt: %v", err)
	}
	requireContains(t, string(data), "00:00.000 --> 00:02.000")
}

func TestVTTCommandUsesRememberedOffset(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"offset", "set", "song-a", "250"}, env.configPath); err != nil {
		t.Fatalf("offset set: %v", err)
	}
	out, _, err := runCLI(t, append([]string{"vtt", "--song", "song-a"}, env.inputs()...), env.configPath)
	if err != nil {
		t.Fatalf("vtt: %v", err)
	}
	requireContains(t, out, "00:00.250 --> 00:02.250")
}

func TestVTTCommandRejectsBadDate(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, append([]string{"vtt", "--date", "yesterday"}, env.inputs()...), env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--date") {
		t.Fatalf("expected date error, got %v", err)
	}
}

func TestLookupCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"lookup", "--time", "2.5"}, env.inputs()...), env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Active: line 2 second line")
	requireContains(t, out, "completed")
	requireContains(t, out, "current")
}

func TestLookupCommandJSONWithOffset(t *testing.T) {
	env := setupCLITestEnv(t)

	args := append([]string{"lookup", "--json", "--time", "2.5", "--offset=-600"}, env.inputs()...)
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var resp api.LookupResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !resp.Frame.Found || resp.Frame.Index != 0 {
		t.Fatalf("expected first cue active, got %+v", resp.Frame)
	}
	if resp.OffsetMs != -600 || resp.OffsetDisplay != "-600ms" {
		t.Fatalf("unexpected offset: %d %q", resp.OffsetMs, resp.OffsetDisplay)
	}
	if len(resp.States) != 2 || resp.States[0] != lookup.Current || resp.States[1] != lookup.Upcoming {
		t.Fatalf("unexpected states: %v", resp.States)
	}
}

func TestLookupCommandNoActiveLine(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, append([]string{"lookup", "--time", "30"}, env.inputs()...), env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Active: none")
}

func TestOffsetCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"offset", "get", "song-a"}, env.configPath)
	if err != nil {
		t.Fatalf("offset get: %v", err)
	}
	requireContains(t, out, "song-a: 0ms")

	out, _, err = runCLI(t, []string{"offset", "set", "song-a", "--ms=-150"}, env.configPath)
	if err != nil {
		t.Fatalf("offset set: %v", err)
	}
	requireContains(t, out, "song-a: -150ms")

	out, _, err = runCLI(t, []string{"offset", "inc", "song-a"}, env.configPath)
	if err != nil {
		t.Fatalf("offset inc: %v", err)
	}
	requireContains(t, out, "song-a: -100ms")

	out, _, err = runCLI(t, []string{"offset", "dec", "song-a", "--step", "400"}, env.configPath)
	if err != nil {
		t.Fatalf("offset dec: %v", err)
	}
	requireContains(t, out, "song-a: -500ms")

	out, _, err = runCLI(t, []string{"offset", "set", "song-b", "9999"}, env.configPath)
	if err != nil {
		t.Fatalf("offset set clamp: %v", err)
	}
	requireContains(t, out, "song-b: +2000ms")

	out, _, err = runCLI(t, []string{"offset", "count"}, env.configPath)
	if err != nil {
		t.Fatalf("offset count: %v", err)
	}
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("expected count 2, got %q", out)
	}

	out, _, err = runCLI(t, []string{"offset", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("offset list: %v", err)
	}
	var list api.OffsetList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode list: %v\n%s", err, out)
	}
	if list.Count != 2 || list.Entries[0].SongID != "song-b" || list.Entries[1].SongID != "song-a" {
		t.Fatalf("expected newest first, got %+v", list.Entries)
	}

	out, _, err = runCLI(t, []string{"offset", "remove", "--number", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("offset remove --number: %v", err)
	}
	requireContains(t, out, "Removed offset for song-b (+2000ms)")

	out, _, err = runCLI(t, []string{"offset", "remove", "song-missing"}, env.configPath)
	if err != nil {
		t.Fatalf("offset remove missing: %v", err)
	}
	requireContains(t, out, "No offset remembered for song-missing")

	out, _, err = runCLI(t, []string{"offset", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("offset list table: %v", err)
	}
	requireContains(t, out, "song-a")
	requireContains(t, out, "1 of 50 slots used")

	out, _, err = runCLI(t, []string{"offset", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("offset clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 offsets")

	out, _, err = runCLI(t, []string{"offset", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("offset list empty: %v", err)
	}
	requireContains(t, out, "No remembered offsets")
}

func TestOffsetRemoveByNumberOutOfRange(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"offset", "remove", "--number", "3"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected out of range error, got %v", err)
	}
}

func TestOffsetSetRequiresValue(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"offset", "set", "song-a"}, env.configPath); err == nil {
		t.Fatal("expected error without a value")
	}
	if _, _, err := runCLI(t, []string{"offset", "set", "song-a", "soon"}, env.configPath); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Offsets backend: file (capacity 50)")
	requireContains(t, out, "Configuration valid")
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	writeFile(t, env.configPath, "[offsets]\ncapacity = 0\n")

	if _, _, err := runCLI(t, []string{"offset", "count"}, env.configPath); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestConfigShowMasksCredentials(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("LYRICSYNC_REDIS_PASSWORD", "hunter2")

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[offsets]")
	requireContains(t, out, env.cfg.Offsets.Path)
	requireContains(t, out, "<redacted>")
	if strings.Contains(out, "hunter2") {
		t.Fatalf("password leaked:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"config", "show", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("config show --json: %v", err)
	}
	var shown config.Config
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if shown.Offsets.Backend != config.BackendFile || shown.Redis.Password != "<redacted>" {
		t.Fatalf("unexpected config: %+v", shown)
	}
}

func TestOffsetCountJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"offset", "set", "song-a", "120"}, env.configPath); err != nil {
		t.Fatalf("offset set: %v", err)
	}

	out, _, err := runCLI(t, []string{"offset", "count", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("offset count --json: %v", err)
	}
	var summary offsetCount
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if summary.Count != 1 || summary.Capacity != 50 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	out, _, err = runCLI(t, []string{"offset", "get", "song-a", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("offset get --json: %v", err)
	}
	var entry api.OffsetEntry
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("decode entry: %v\n%s", err, out)
	}
	if entry.SongID != "song-a" || entry.OffsetMs != 120 || entry.Display != "+120ms" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}
