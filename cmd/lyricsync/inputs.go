package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/alignment"
)

// alignInputs names the two files every alignment-driven command reads.
// Either may be "-" for stdin, but not both.
type alignInputs struct {
	wordsPath  string
	lyricsPath string
}

func (in *alignInputs) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.wordsPath, "words", "w", "", "Word timing JSON file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&in.lyricsPath, "lyrics", "l", "", "Plain text lyrics file (\"-\" for stdin)")
	_ = cmd.MarkFlagRequired("words")
	_ = cmd.MarkFlagRequired("lyrics")
}

func (in *alignInputs) read(cmd *cobra.Command) ([]alignment.AlignedWord, string, error) {
	wordsPath := strings.TrimSpace(in.wordsPath)
	lyricsPath := strings.TrimSpace(in.lyricsPath)
	if wordsPath == "-" && lyricsPath == "-" {
		return nil, "", errors.New("--words and --lyrics cannot both read stdin")
	}

	wordsData, err := readInput(cmd, wordsPath)
	if err != nil {
		return nil, "", fmt.Errorf("read words: %w", err)
	}
	words, err := alignment.DecodeWords(bytes.NewReader(wordsData))
	if err != nil {
		return nil, "", fmt.Errorf("decode words %s: %w", wordsPath, err)
	}

	lyrics, err := readInput(cmd, lyricsPath)
	if err != nil {
		return nil, "", fmt.Errorf("read lyrics: %w", err)
	}
	return words, string(lyrics), nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// alignCues runs the aligner for in and returns its result.
func alignCues(cmd *cobra.Command, ctx *commandContext, in *alignInputs) (alignment.Result, error) {
	words, lyrics, err := in.read(cmd)
	if err != nil {
		return alignment.Result{}, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return alignment.Result{}, err
	}
	return alignment.NewAligner(logger, nil).Align(ctx.runContext(cmd), words, lyrics), nil
}
