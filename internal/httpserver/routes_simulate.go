// internal/httpserver/routes_simulate.go
//
// Solver simulations against a hidden answer, persisted as run history:
//   - POST /simulate      → play one game (the daily word when no target)
//   - GET  /runs/recent   → latest persisted runs
//   - GET  /runs/summary  → per-strategy aggregates

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fxh90/WordleSolver/internal/runs"
	"github.com/fxh90/WordleSolver/internal/simulate"
)

var errRunsDisabled = errors.New("run history disabled")

func (s *Server) mountSimulate(r chi.Router) {
	r.Post("/simulate", s.handleSimulate)
	r.Get("/runs/recent", s.handleRecentRuns)
	r.Get("/runs/summary", s.handleRunSummary)
}

type simulateReq struct {
	Target      string  `json:"target"`
	Strategy    string  `json:"strategy"`
	K           float64 `json:"k"`
	MaxAttempts int     `json:"maxAttempts"`
}

type simulateRes struct {
	simulate.Result
	Date  string `json:"date,omitempty"` // set when the daily word was used
	RunID int64  `json:"runId,omitempty"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res simulateRes
	target := strings.ToLower(strings.TrimSpace(req.Target))
	if target == "" {
		tg := s.daily.For(s.now())
		res.Date, target = tg.Date, tg.Word
	}
	if !s.deps.Engine.IsAnswer(target) {
		writeError(w, http.StatusBadRequest, "not_an_answer")
		return
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = simulate.DefaultMaxAttempts
	}
	result, err := simulate.Run(s.deps.Engine, s.sessionOptions(req.Strategy, req.K, maxAttempts), target)
	if err != nil {
		fail(w, r, err)
		return
	}
	res.Result = result
	s.deps.Metrics.Simulations.
		WithLabelValues(result.Strategy, strconv.FormatBool(result.Solved)).
		Inc()

	if s.deps.Runs != nil {
		id, err := s.deps.Runs.Insert(r.Context(), runs.Run{
			Answer:    result.Answer,
			Strategy:  result.Strategy,
			Attempts:  result.Attempts,
			Solved:    result.Solved,
			Guesses:   result.Guesses(),
			ElapsedMs: int(result.Elapsed.Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("answer", result.Answer).Msg("insert run")
		}
		res.RunID = id
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	if s.deps.Runs == nil {
		fail(w, r, errRunsDisabled)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.deps.Runs.Recent(r.Context(), limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRunSummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.Runs == nil {
		fail(w, r, errRunsDisabled)
		return
	}
	sums, err := s.deps.Runs.Summaries(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sums)
}
