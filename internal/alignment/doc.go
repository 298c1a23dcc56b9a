// Package alignment folds word-level timing records onto edited lyric text.
//
// Aggregate walks the lyric lines in order with a forward-only cursor over
// the alignment records. Each line is matched when its normalized tokens are
// spelled out by consecutive records starting exactly at the cursor; a lyric
// token may span several records ("we're" against "we" + "re"). Lines that
// cannot be matched are omitted without moving the cursor, and consumed
// records are never revisited.
//
// AggregateDetailed returns the same cues alongside diagnostics, and Aligner
// wraps it with logging and metrics for the CLI and HTTP server.
package alignment
