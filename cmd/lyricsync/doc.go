// Command lyricsync aligns word timings to lyrics, renders WebVTT captions,
// answers highlighting lookups, manages remembered per-song offsets, and
// serves the same operations over HTTP.
//
// Global flags:
//
//	-c, --config  configuration file (default ~/.config/lyricsync/config.toml)
//	    --json    machine readable output
package main
