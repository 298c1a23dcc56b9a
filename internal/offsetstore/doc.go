// Package offsetstore remembers the user's sync offset per song.
//
// All offsets live in one JSON object stored under a single key:
//
//	{"<songID>": {"offset": -150, "updatedAt": 1718000000000}}
//
// The object is bounded: once it holds more than the configured capacity the
// least recently updated songs are evicted. Store never fails its callers;
// storage problems are logged and counted, and reads fall back to a zero
// offset. The bytes themselves go through a Storage backend selected by
// configuration (memory, file, sqlite, libsql or redis).
package offsetstore
