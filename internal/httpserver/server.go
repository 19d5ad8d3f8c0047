// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request latency metrics).
//   - Diagnostics: "/", "/health", "/metrics", "/debug/words".
//   - Solver sessions (routes_session.go), hidden-answer puzzles
//     (routes_game.go), simulations and run history (routes_simulate.go).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/fxh90/WordleSolver/internal/config"
	"github.com/fxh90/WordleSolver/internal/daily"
	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/game"
	"github.com/fxh90/WordleSolver/internal/metrics"
	"github.com/fxh90/WordleSolver/internal/runs"
	"github.com/fxh90/WordleSolver/internal/solver"
	"github.com/fxh90/WordleSolver/internal/store"
	"github.com/fxh90/WordleSolver/internal/words"
)

// Deps are the collaborators a Server needs. Runs may be nil, in which case
// simulations are not persisted.
type Deps struct {
	Config  config.Config
	Engine  *solver.Engine
	Words   *words.Lists
	Runs    *runs.Store
	Metrics *metrics.Metrics
}

// liveSession guards a solver session; one request drives it at a time.
type liveSession struct {
	mu sync.Mutex
	s  *solver.Session
}

type liveGame struct {
	mu sync.Mutex
	g  *game.Game
}

// Server bundles router, stores, and the shared engine.
type Server struct {
	r        *chi.Mux
	deps     Deps
	sessions *store.Memory[*liveSession]
	games    *store.Memory[*liveGame]
	daily    *daily.Picker
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) *Server {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	ttl := time.Duration(deps.Config.JWTExpiresHours) * time.Hour
	s := &Server{
		r:        chi.NewRouter(),
		deps:     deps,
		sessions: store.NewMemory[*liveSession](ttl),
		games:    store.NewMemory[*liveGame](ttl),
		daily:    daily.NewPicker(deps.Config.DailySalt, deps.Engine.Answers()),
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(60 * time.Second)) // /simulate plays a whole game
	s.r.Use(s.instrument)
	s.r.Use(jsonContentType)
	s.r.Use(cors(deps.Config.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/metrics", "/debug/words", "POST /compare",
				"POST /sessions", "GET /sessions/{id}", "GET /sessions/{id}/guess", "POST /sessions/{id}/feedback",
				"POST /game/new", "POST /game/guess", "POST /simulate", "GET /runs/recent", "GET /runs/summary",
			},
			"strategies": solver.Strategies(),
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := deps.Words.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"answers":     a,
			"allowed":     g,
			"length":      deps.Words.Length(),
			"fingerprint": deps.Engine.Fingerprint(),
		})
	})

	s.r.Post("/compare", s.handleCompare)
	s.mountSessions(s.r)
	s.mountGame(s.r)
	s.mountSimulate(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Janitor drops idle sessions and games until ctx is done.
func (s *Server) Janitor(ctx context.Context, interval time.Duration) {
	go s.games.Janitor(ctx, interval)
	s.sessions.Janitor(ctx, interval)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// instrument records handler latency by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.deps.Metrics.RequestSeconds.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeBody decodes an optional JSON body; an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errRunsDisabled):
		return http.StatusServiceUnavailable, "runs_disabled"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, solver.ErrSessionFinished), errors.Is(err, game.ErrFinished):
		return http.StatusConflict, "finished"
	case errors.Is(err, solver.ErrNoPendingGuess):
		return http.StatusConflict, "no_pending_guess"
	case errors.Is(err, solver.ErrEmptyAnswerSet):
		return http.StatusUnprocessableEntity, "contradictory_feedback"
	case errors.Is(err, solver.ErrUnknownGuess), errors.Is(err, game.ErrNotInWordList):
		return http.StatusBadRequest, "not_in_word_list"
	case errors.Is(err, solver.ErrUnknownStrategy):
		return http.StatusBadRequest, "unknown_strategy"
	case errors.Is(err, solver.ErrInvalidWeight):
		return http.StatusBadRequest, "invalid_weight"
	case errors.Is(err, feedback.ErrInvalidCode):
		return http.StatusBadRequest, "invalid_feedback"
	case errors.Is(err, feedback.ErrLengthMismatch), errors.Is(err, feedback.ErrInvalidLength),
		errors.Is(err, game.ErrInvalidGuess):
		return http.StatusBadRequest, "invalid_word"
	}
	return http.StatusInternalServerError, "server_error"
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, code)
}
