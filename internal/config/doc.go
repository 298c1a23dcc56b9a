// Package config loads, normalizes, and validates lyricsync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and layers environment overrides on top,
// reading a .env file first when one is present. The Config type centralizes
// the offset storage backend, lookup behavior, HTTP bind address and logging
// settings so the CLI and server discover them in one pass.
package config
