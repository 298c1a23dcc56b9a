package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// emit writes v as JSON when --json is set and otherwise hands stdout to
// text. Every command with structured output goes through here so both modes
// describe the same value.
func emit(cmd *cobra.Command, ctx *commandContext, v any, text func(out io.Writer) error) error {
	out := cmd.OutOrStdout()
	if ctx.JSONMode() {
		return encodeJSON(out, v)
	}
	return text(out)
}

// encodeJSON writes v indented. Lyrics are left unescaped so "<" and "&" in
// lines read the same as in the source text.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
