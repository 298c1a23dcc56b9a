// Package api defines the wire types, shared actions, and HTTP server used to
// expose lyricsync over the network. The CLI reuses the same actions so both
// surfaces resolve offsets and render output identically.
//
// # Routes
//
//	POST   /v1/align              words + lyrics -> cues and diagnostics
//	POST   /v1/vtt                cues -> text/vtt attachment
//	POST   /v1/lookup             cues + clock -> active frame and states
//	GET    /v1/offsets            remembered offsets, newest first
//	DELETE /v1/offsets            forget every offset
//	GET    /v1/offsets/{songID}   one offset (0 when unknown)
//	PUT    /v1/offsets/{songID}   set or nudge an offset
//	DELETE /v1/offsets/{songID}   forget one offset
//	GET    /metrics               Prometheus scrape
//	GET    /healthz               liveness
//
// Request and response bodies use snake_case JSON. Offsets are always
// clamped to the supported range before they are stored or applied.
package api
