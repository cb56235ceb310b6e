// Package http serves the published frames of a mazewalk session to renderers
// that run outside the engine process.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mazewalk/internal/logging"
	"github.com/aretw0/mazewalk/internal/presentation/graph"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// DefaultPollInterval is how often /events checks the store for a new frame.
const DefaultPollInterval = 100 * time.Millisecond

// Server reads snapshots from a store and exposes them over HTTP.
type Server struct {
	Store     ports.SnapshotStore
	SessionID string

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	AllowedOrigins []string
	PollInterval   time.Duration
	Version        string
	Logger         *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithAllowedOrigins sets the CORS origins. Defaults to "*".
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.AllowedOrigins = origins }
}

// WithPollInterval sets how often the event stream polls the store.
// Non-positive values fall back to DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) { s.PollInterval = d }
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewServer creates a Server for the given default session.
func NewServer(store ports.SnapshotStore, sessionID string, opts ...Option) *Server {
	s := &Server{
		Store:          store,
		SessionID:      sessionID,
		AllowedOrigins: []string{"*"},
		PollInterval:   DefaultPollInterval,
		Version:        "dev",
		Logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.PollInterval <= 0 {
		s.PollInterval = DefaultPollInterval
	}
	return s
}

// NewHandler creates the HTTP handler for a store.
func NewHandler(store ports.SnapshotStore, sessionID string, opts ...Option) http.Handler {
	return NewServer(store, sessionID, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/sessions", s.ListSessions)
	r.Get("/snapshot", s.GetSnapshot)
	r.Get("/maze", s.GetMaze)
	r.Get("/maze.txt", s.GetMazeASCII)
	r.Get("/maze.mmd", s.GetMazeMermaid)
	r.Get("/events", s.SubscribeEvents)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return s.enableCORS(r)
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowOrigin(origin string) string {
	for _, o := range s.AllowedOrigins {
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// session resolves the session of a request, ?session= overriding the default.
func (s *Server) session(r *http.Request) string {
	if id := r.URL.Query().Get("session"); id != "" {
		return id
	}
	return s.SessionID
}

// load fetches the snapshot of the request session and writes the error
// response itself when it fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (domain.Snapshot, bool) {
	id := s.session(r)
	snap, err := s.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, fmt.Sprintf("No snapshot for session %q", id), http.StatusNotFound)
			return snap, false
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Snapshot load failed", "session_id", id, "error", err)
		return snap, false
	}
	if snap.Graph == nil {
		http.Error(w, "Maze graph expired", http.StatusNotFound)
		return snap, false
	}
	return snap, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "mazewalk-http",
		"version": s.Version,
		"session": s.SessionID,
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Session list failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, ids)
}

// GetSnapshot handles the GET /snapshot request. The graph is omitted; renderers
// fetch it from /maze when the maze ID changes.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, snap.WithoutGraph())
}

// GetMaze handles the GET /maze request.
func (s *Server) GetMaze(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("X-Maze-Id", snap.MazeID)
	s.writeJSON(w, snap.Graph)
}

// GetMazeASCII handles the GET /maze.txt request.
func (s *Server) GetMazeASCII(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.RenderASCII(snap.Graph, graph.OverlayFromSnapshot(snap)))
}

// GetMazeMermaid handles the GET /maze.mmd request.
func (s *Server) GetMazeMermaid(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(snap.Graph, graph.OverlayFromSnapshot(snap)))
}

// SubscribeEvents handles the GET /events request (SSE).
// A "maze" event carries the graph whenever a new maze is installed; a "frame"
// event carries every newly published snapshot without its graph.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id := s.session(r)
	s.Logger.Info("SSE: Subscribing to session frames", "session_id", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	var lastMaze string
	var lastTicks uint64
	for {
		snap, err := s.Store.Load(r.Context(), id)
		switch {
		case err == nil:
			if snap.MazeID != lastMaze && snap.Graph != nil {
				if s.sendEvent(w, "maze", snap.Graph) {
					lastMaze = snap.MazeID
				}
			}
			if snap.Ticks != lastTicks {
				if s.sendEvent(w, "frame", snap.WithoutGraph()) {
					lastTicks = snap.Ticks
				}
			}
			flusher.Flush()
		case !errors.Is(err, domain.ErrSnapshotNotFound) && r.Context().Err() == nil:
			s.Logger.Warn("SSE: Snapshot load failed", "session_id", id, "error", err)
		}

		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) sendEvent(w http.ResponseWriter, event string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.Logger.Error("SSE: Encode failed", "event", event, "error", err)
		return false
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return true
}
