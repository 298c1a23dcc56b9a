package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lyricsync/internal/alignment"
	"lyricsync/internal/config"
	"lyricsync/internal/logging"
	"lyricsync/internal/metrics"
	"lyricsync/internal/offsetstore"
)

const (
	maxBodyBytes    = 8 << 20
	shutdownTimeout = 10 * time.Second
	vttContentType  = "text/vtt; charset=utf-8"
)

// Server exposes lyricsync over HTTP.
type Server struct {
	store       *offsetstore.Store
	aligner     *alignment.Aligner
	metrics     *metrics.Metrics
	logger      *slog.Logger
	bind        string
	skipMarkers bool
	router      chi.Router
}

// NewServer builds the router. store must be non-nil; logger and m may be nil.
func NewServer(cfg *config.Config, store *offsetstore.Store, logger *slog.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		store:       store,
		aligner:     alignment.NewAligner(logger, m),
		metrics:     m,
		logger:      logging.NewComponentLogger(logger, "api"),
		bind:        cfg.API.Bind,
		skipMarkers: cfg.Lookup.SkipMarkers,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.RequestMiddleware(s.metrics))

	r.Get("/healthz", s.health)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.metrics.Handler(func() { s.metrics.SetCachedOffsets(s.store.Count(r.Context())) }).ServeHTTP(w, r)
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/align", s.align)
		r.Post("/vtt", s.vtt)
		r.Post("/lookup", s.lookup)
		r.Route("/offsets", func(r chi.Router) {
			r.Get("/", s.listOffsets)
			r.Delete("/", s.clearOffsets)
			r.Get("/{songID}", s.getOffset)
			r.Put("/{songID}", s.putOffset)
			r.Delete("/{songID}", s.deleteOffset)
		})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve accepts connections on ln until ctx is canceled, then drains them.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server starting", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// ListenAndServe listens on the configured bind address and serves until ctx
// is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.bind, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) align(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if !s.decode(w, r, &req) {
		return
	}
	result := s.aligner.Align(r.Context(), req.Words, req.Lyrics)
	if result.Cues == nil {
		result.Cues = []alignment.LineCue{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) vtt(w http.ResponseWriter, r *http.Request) {
	var req VTTRequest
	if !s.decode(w, r, &req) {
		return
	}
	offsetMs := ResolveOffset(r.Context(), s.store, req.SongID, req.OffsetMs)
	name, body, err := RenderVTT(req.Cues, offsetMs, req.Style, req.Date)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", vttContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if !s.decode(w, r, &req) {
		return
	}
	skip := s.skipMarkers
	if req.SkipMarkers != nil {
		skip = *req.SkipMarkers
	}
	offsetMs := ResolveOffset(r.Context(), s.store, req.SongID, req.OffsetMs)
	writeJSON(w, http.StatusOK, Lookup(req.Cues, req.Time, offsetMs, skip))
}

func (s *Server) listOffsets(w http.ResponseWriter, r *http.Request) {
	entries := FromEntries(s.store.List(r.Context()))
	writeJSON(w, http.StatusOK, OffsetList{Count: len(entries), Entries: entries})
}

func (s *Server) clearOffsets(w http.ResponseWriter, r *http.Request) {
	s.store.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getOffset(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "songID")
	entry, ok := s.store.Get(r.Context(), songID)
	if !ok {
		entry = offsetstore.Entry{SongID: songID}
	}
	writeJSON(w, http.StatusOK, FromEntry(entry))
}

func (s *Server) putOffset(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "songID")
	var update OffsetUpdate
	if !s.decode(w, r, &update) {
		return
	}
	next, err := ApplyOffsetUpdate(r.Context(), s.store, songID, update)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	entry, ok := s.store.Get(r.Context(), songID)
	if !ok {
		entry = offsetstore.Entry{SongID: songID, OffsetMs: next}
	}
	writeJSON(w, http.StatusOK, FromEntry(entry))
}

func (s *Server) deleteOffset(w http.ResponseWriter, r *http.Request) {
	if !s.store.Remove(r.Context(), chi.URLParam(r, "songID")) {
		s.fail(w, r, http.StatusNotFound, errors.New("no offset stored for song"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.WithContext(r.Context(), s.logger).Debug("request failed",
		logging.Int("status", status),
		logging.Error(err),
	)
	id, _ := logging.CorrelationIDFromContext(r.Context())
	writeJSON(w, status, ErrorResponse{Error: err.Error(), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
