package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/api"
	"lyricsync/internal/offset"
)

type offsetCount struct {
	Count    int `json:"count"`
	Capacity int `json:"capacity"`
}

// resolveOffset opens the store only when the offset must come from it.
func resolveOffset(cmd *cobra.Command, ctx *commandContext, songID string, explicit *int) (int, error) {
	if explicit != nil || strings.TrimSpace(songID) == "" {
		return api.ResolveOffset(ctx.runContext(cmd), nil, songID, explicit), nil
	}
	store, err := ctx.openStore(nil)
	if err != nil {
		return 0, fmt.Errorf("open offset store: %w", err)
	}
	return api.ResolveOffset(ctx.runContext(cmd), store, songID, nil), nil
}

func newOffsetCommand(ctx *commandContext) *cobra.Command {
	offsetCmd := &cobra.Command{
		Use:   "offset",
		Short: "Manage remembered per-song sync offsets",
	}

	offsetCmd.AddCommand(newOffsetGetCommand(ctx))
	offsetCmd.AddCommand(newOffsetSetCommand(ctx))
	offsetCmd.AddCommand(newOffsetStepCommand(ctx, "inc", "Raise", 1))
	offsetCmd.AddCommand(newOffsetStepCommand(ctx, "dec", "Lower", -1))
	offsetCmd.AddCommand(newOffsetListCommand(ctx))
	offsetCmd.AddCommand(newOffsetRemoveCommand(ctx))
	offsetCmd.AddCommand(newOffsetClearCommand(ctx))
	offsetCmd.AddCommand(newOffsetCountCommand(ctx))

	return offsetCmd
}

func writeOffset(cmd *cobra.Command, ctx *commandContext, songID string, ms int) error {
	return writeOffsetEntry(cmd, ctx, api.OffsetEntry{SongID: songID, OffsetMs: ms, Display: offset.FormatDisplay(ms)})
}

func writeOffsetEntry(cmd *cobra.Command, ctx *commandContext, entry api.OffsetEntry) error {
	return emit(cmd, ctx, entry, func(out io.Writer) error {
		_, err := fmt.Fprintf(out, "%s: %s\n", entry.SongID, entry.Display)
		return err
	})
}

func newOffsetGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <song-id>",
		Short: "Show the remembered offset for a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			songID := strings.TrimSpace(args[0])
			entry, ok := store.Get(ctx.runContext(cmd), songID)
			if !ok {
				return writeOffset(cmd, ctx, songID, 0)
			}
			return writeOffsetEntry(cmd, ctx, api.FromEntry(entry))
		},
	}
}

func newOffsetSetCommand(ctx *commandContext) *cobra.Command {
	var ms int

	cmd := &cobra.Command{
		Use:   "set <song-id> [ms]",
		Short: "Remember an offset for a song",
		Long: "Remember an offset for a song. Values are clamped to the supported range.\n" +
			"Use --ms=-150 (or \"--\" before the value) for negative offsets.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ms
			switch {
			case len(args) == 2:
				parsed, err := strconv.Atoi(strings.TrimSpace(args[1]))
				if err != nil {
					return fmt.Errorf("invalid offset %q: %w", args[1], err)
				}
				value = parsed
			case !cmd.Flags().Changed("ms"):
				return fmt.Errorf("an offset value or --ms is required")
			}

			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			next, err := api.ApplyOffsetUpdate(ctx.runContext(cmd), store, args[0], api.OffsetUpdate{OffsetMs: &value})
			if err != nil {
				return err
			}
			return writeOffset(cmd, ctx, strings.TrimSpace(args[0]), next)
		},
	}

	cmd.Flags().IntVar(&ms, "ms", 0, "Offset in milliseconds")
	return cmd
}

func newOffsetStepCommand(ctx *commandContext, use, verb string, sign int) *cobra.Command {
	var step int

	cmd := &cobra.Command{
		Use:   use + " <song-id>",
		Short: verb + " a song's offset by one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			delta := cfg.Offsets.StepMs
			if cmd.Flags().Changed("step") {
				delta = step
			}
			if delta <= 0 {
				return fmt.Errorf("step must be positive, got %d", delta)
			}

			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			next, err := api.ApplyOffsetUpdate(ctx.runContext(cmd), store, args[0], api.OffsetUpdate{DeltaMs: sign * delta})
			if err != nil {
				return err
			}
			return writeOffset(cmd, ctx, strings.TrimSpace(args[0]), next)
		},
	}

	cmd.Flags().IntVar(&step, "step", offset.DefaultStepMs, "Step size in milliseconds (defaults to offsets.step_ms)")
	return cmd
}

func newOffsetListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remembered offsets, most recently used first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			entries := api.FromEntries(store.List(ctx.runContext(cmd)))
			return emit(cmd, ctx, api.OffsetList{Count: len(entries), Entries: entries}, func(out io.Writer) error {
				if len(entries) == 0 {
					fmt.Fprintln(out, "No remembered offsets")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for i, entry := range entries {
					rows = append(rows, []string{strconv.Itoa(i + 1), entry.SongID, entry.Display, entry.UpdatedAt})
				}
				fmt.Fprintln(out, renderTable(
					[]tableColumn{rightColumn("#"), leftColumn("Song"), rightColumn("Offset"), leftColumn("Updated")},
					rows,
				))
				fmt.Fprintf(out, "%d of %d slots used\n", len(entries), store.Capacity())
				return nil
			})
		},
	}
}

func newOffsetRemoveCommand(ctx *commandContext) *cobra.Command {
	var byNumber bool

	cmd := &cobra.Command{
		Use:   "remove <song-id>",
		Short: "Forget the offset for a song",
		Long:  "Forget the offset for a song. With --number the argument is the entry number shown by offset list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			out := cmd.OutOrStdout()

			if byNumber {
				entryNum, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("invalid entry number: %s (must be a positive integer)", args[0])
				}
				entry, err := api.RemoveOffsetEntryByNumber(runCtx, store, entryNum)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed offset for %s (%s)\n", entry.SongID, offset.FormatDisplay(entry.OffsetMs))
				return nil
			}

			songID := strings.TrimSpace(args[0])
			if songID == "" {
				return fmt.Errorf("song id is required")
			}
			if !store.Remove(runCtx, songID) {
				fmt.Fprintf(out, "No offset remembered for %s\n", songID)
				return nil
			}
			fmt.Fprintf(out, "Removed offset for %s\n", songID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&byNumber, "number", "n", false, "Treat the argument as an entry number from offset list")
	return cmd
}

func newOffsetClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget every remembered offset",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)
			count := store.Count(runCtx)
			store.Clear(runCtx)
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d offsets\n", count)
			return nil
		},
	}
}

func newOffsetCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show how many offsets are remembered",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(nil)
			if err != nil {
				return err
			}
			count := store.Count(ctx.runContext(cmd))
			summary := offsetCount{Count: count, Capacity: store.Capacity()}
			return emit(cmd, ctx, summary, func(out io.Writer) error {
				_, err := fmt.Fprintln(out, count)
				return err
			})
		},
	}
}
