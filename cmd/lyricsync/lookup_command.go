package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lyricsync/internal/alignment"
	"lyricsync/internal/api"
	"lyricsync/internal/vtt"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var in alignInputs
	var at float64
	var offsetMs int
	var songID string
	var skipMarkers bool

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show which lyric line is active at a playback time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
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
			skip := cfg.Lookup.SkipMarkers
			if cmd.Flags().Changed("skip-markers") {
				skip = skipMarkers
			}

			resp := api.Lookup(result.Cues, at, resolved, skip)
			return emit(cmd, ctx, resp, func(out io.Writer) error {
				fmt.Fprintf(out, "Time:   %s (offset %s, adjusted %s)\n",
					vtt.FormatTimestamp(at), resp.OffsetDisplay, vtt.FormatTimestamp(resp.Frame.Adjusted))
				if resp.Cue != nil {
					fmt.Fprintf(out, "Active: line %d %s\n", resp.Cue.Index+1, cueLabel(*resp.Cue))
				} else {
					fmt.Fprintln(out, "Active: none")
				}
				if len(result.Cues) > 0 {
					fmt.Fprintln(out, renderCueTable(result.Cues, resp.States, shouldColorize(out)))
				}
				return nil
			})
		},
	}

	in.bind(cmd)
	cmd.Flags().Float64VarP(&at, "time", "t", 0, "Playback time in seconds")
	cmd.Flags().IntVar(&offsetMs, "offset", 0, "Sync offset in milliseconds (defaults to the remembered offset for --song)")
	cmd.Flags().StringVar(&songID, "song", "", "Song identifier used to look up a remembered offset")
	cmd.Flags().BoolVar(&skipMarkers, "skip-markers", true, "Never report section markers as the active line")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func countLyricCues(result alignment.Result) int {
	n := 0
	for _, cue := range result.Cues {
		if !cue.IsMarker {
			n++
		}
	}
	return n
}
