package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"lyricsync/internal/alignment"
	"lyricsync/internal/lookup"
	"lyricsync/internal/vtt"
)

type tableColumn struct {
	header string
	align  text.Align
}

func leftColumn(header string) tableColumn  { return tableColumn{header: header, align: text.AlignLeft} }
func rightColumn(header string) tableColumn { return tableColumn{header: header, align: text.AlignRight} }

func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: col.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// renderCueTable lists cues with 1-based source line numbers. A State column
// is added when states is non-nil.
func renderCueTable(cues []alignment.LineCue, states []lookup.State, colorize bool) string {
	columns := []tableColumn{rightColumn("Line"), rightColumn("Start"), rightColumn("End"), leftColumn("Text")}
	if states != nil {
		columns = append(columns, leftColumn("State"))
	}

	rows := make([][]string, 0, len(cues))
	for i, cue := range cues {
		row := []string{
			strconv.Itoa(cue.Index + 1),
			vtt.FormatTimestamp(cue.StartTime),
			vtt.FormatTimestamp(cue.EndTime),
			cueLabel(cue),
		}
		if states != nil {
			state := lookup.Upcoming
			if i < len(states) {
				state = states[i]
			}
			row = append(row, colorizeState(state, colorize))
		}
		rows = append(rows, row)
	}
	return renderTable(columns, rows)
}

func renderSkippedTable(skipped []alignment.SkippedLine) string {
	rows := make([][]string, 0, len(skipped))
	for _, line := range skipped {
		rows = append(rows, []string{strconv.Itoa(line.Index + 1), line.Reason, line.Text})
	}
	return renderTable([]tableColumn{rightColumn("Line"), leftColumn("Reason"), leftColumn("Text")}, rows)
}
