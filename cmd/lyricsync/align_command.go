package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lyricsync/internal/alignment"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var in alignInputs

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align word timings to lyric lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := alignCues(cmd, ctx, &in)
			if err != nil {
				return err
			}
			if result.Cues == nil {
				result.Cues = []alignment.LineCue{}
			}
			return emit(cmd, ctx, result, func(out io.Writer) error {
				writeAlignment(out, result, shouldColorize(out))
				return nil
			})
		},
	}

	in.bind(cmd)
	return cmd
}

func writeAlignment(out io.Writer, result alignment.Result, colorize bool) {
	if len(result.Cues) == 0 {
		fmt.Fprintln(out, "No lines matched")
	} else {
		fmt.Fprintln(out, renderCueTable(result.Cues, nil, colorize))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintln(out)
		for _, line := range renderSectionHeader(fmt.Sprintf("Skipped %d lines", len(result.Skipped)), colorize) {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, renderSkippedTable(result.Skipped))
	}
	if len(result.Rejected) > 0 {
		fmt.Fprintln(out, warnLine(fmt.Sprintf("Rejected %d malformed word records", len(result.Rejected)), colorize))
	}
}
