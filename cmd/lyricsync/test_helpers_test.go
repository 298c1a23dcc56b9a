package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/testsupport"
)

const (
	testWords = `{"words":[
		{"text":"hello","start_time":0,"end_time":1},
		{"text":"world","start_time":1,"end_time":2},
		{"text":"second","start_time":2,"end_time":3},
		{"text":"line","start_time":3,"end_time":4}
	]}`
	testLyrics = "hello world\nsecond line\nmissing words\n"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	wordsPath  string
	lyricsPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("LYRICSYNC_OFFSETS_BACKEND", "")
	t.Setenv("LYRICSYNC_LOG_LEVEL", "")
	t.Chdir(base)

	cfg := testsupport.NewConfig(t, testsupport.WithBackend(config.BackendFile))
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		wordsPath:  filepath.Join(base, "words.json"),
		lyricsPath: filepath.Join(base, "lyrics.txt"),
		baseDir:    base,
	}
	writeFile(t, env.wordsPath, testWords)
	writeFile(t, env.lyricsPath, testLyrics)
	return env
}

func (e *cliTestEnv) inputs() []string {
	return []string{"--words", e.wordsPath, "--lyrics", e.lyricsPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[offsets]\nbackend = %q\npath = %q\ncapacity = %d\nstep_ms = %d\n\n[logging]\nlevel = \"error\"\ndir = %q\n",
		cfg.Offsets.Backend,
		cfg.Offsets.Path,
		cfg.Offsets.Capacity,
		cfg.Offsets.StepMs,
		cfg.Logging.Dir,
	)
	writeFile(t, path, content)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
