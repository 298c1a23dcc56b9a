package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"lyricsync/internal/alignment"
	"lyricsync/internal/lookup"
	"lyricsync/internal/marker"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiDim    = "\x1b[2m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stateColor(state lookup.State) string {
	switch state {
	case lookup.Current:
		return ansiGreen
	case lookup.Completed:
		return ansiDim
	default:
		return ""
	}
}

func colorizeState(state lookup.State, colorize bool) string {
	label := state.String()
	if !colorize {
		return label
	}
	if color := stateColor(state); color != "" {
		return color + label + ansiReset
	}
	return label
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func warnLine(message string, colorize bool) string {
	if colorize {
		return ansiYellow + message + ansiReset
	}
	return message
}

func errorLine(message string, colorize bool) string {
	if colorize {
		return ansiRed + message + ansiReset
	}
	return message
}

// cueLabel renders markers as their bracketed label and lyrics verbatim.
func cueLabel(cue alignment.LineCue) string {
	if cue.IsMarker {
		return "[" + marker.Label(cue.Text) + "]"
	}
	return cue.Text
}
