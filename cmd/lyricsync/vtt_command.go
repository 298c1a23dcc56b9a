package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/api"
)

type vttResult struct {
	Path     string `json:"path,omitempty"`
	Filename string `json:"filename"`
	Cues     int    `json:"cues"`
	OffsetMs int    `json:"offset_ms"`
}

func newVTTCommand(ctx *commandContext) *cobra.Command {
	var in alignInputs
	var offsetMs int
	var songID string
	var style string
	var date string
	var outPath string

	cmd := &cobra.Command{
		Use:   "vtt",
		Short: "Render aligned lyrics as WebVTT captions",
		Long: "Render aligned lyrics as WebVTT captions.\n\n" +
			"Without --out the document is written to stdout. When --out names a directory the\n" +
			"file is placed there under a song-<style>-<date>.vtt name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := alignCues(cmd, ctx, &in)
			if err != nil {
				return err
			}

			var explicit *int
			if cmd.Flags().Changed("offset") {
				explicit = &offsetMs
			}
			resolved, err := resolveOffset(cmd, ctx, songID, explicit)
			if err != nil {
				return err
			}

			name, body, err := api.RenderVTT(result.Cues, resolved, style, date)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}

			target := strings.TrimSpace(outPath)
			if target == "" {
				if ctx.JSONMode() {
					return errors.New("--json requires --out")
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
				target = filepath.Join(target, name)
			} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
				return fmt.Errorf("check output path: %w", statErr)
			}
			if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write vtt: %w", err)
			}

			written := vttResult{
				Path:     target,
				Filename: filepath.Base(target),
				Cues:     countLyricCues(result),
				OffsetMs: resolved,
			}
			return emit(cmd, ctx, written, func(out io.Writer) error {
				_, err := fmt.Fprintf(out, "Wrote %s\n", target)
				return err
			})
		},
	}

	in.bind(cmd)
	cmd.Flags().IntVar(&offsetMs, "offset", 0, "Sync offset in milliseconds (defaults to the remembered offset for --song)")
	cmd.Flags().StringVar(&songID, "song", "", "Song identifier used to look up a remembered offset")
	cmd.Flags().StringVar(&style, "style", "", "Style name used in the output filename")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or RFC 3339) used in the output filename")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file or directory")
	return cmd
}
