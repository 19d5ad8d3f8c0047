// internal/httpserver/routes_session.go
//
// Interactive solver sessions. The caller plays the recommended guesses in a
// real game and reports the feedback it sees:
//   - POST /sessions                → start a session, returns a bearer token
//   - GET  /sessions/{id}           → state and history
//   - GET  /sessions/{id}/guess     → next guess and top candidates
//   - POST /sessions/{id}/feedback  → apply a pattern or code
//
// Every /sessions/{id} route requires the token issued for that session.

package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/solver"
)

const (
	defaultTop = 5
	maxTop     = 50
	// Remaining answers are listed in full at or below this count.
	listRemaining = 20
)

func (s *Server) mountSessions(r chi.Router) {
	r.Post("/sessions", s.handleNewSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSessionToken)
		r.Get("/", s.handleSessionState)
		r.Get("/guess", s.handleNextGuess)
		r.Post("/feedback", s.handleFeedback)
	})
}

// ------------------------------- compare -----------------------------------

type compareReq struct {
	Guess  string `json:"guess"`
	Target string `json:"target"`
}

type compareRes struct {
	Code    feedback.Code `json:"code"`
	Pattern string        `json:"pattern"`
}

// handleCompare scores a guess against a target with the two-pass rule.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))
	target := strings.ToLower(strings.TrimSpace(req.Target))
	code, err := feedback.Encode(guess, target)
	if err != nil {
		fail(w, r, err)
		return
	}
	pattern, _ := code.Pattern(len(guess))
	writeJSON(w, http.StatusOK, compareRes{Code: code, Pattern: pattern})
}

// ------------------------------- sessions ----------------------------------

type newSessionReq struct {
	Strategy    string  `json:"strategy"`
	K           float64 `json:"k"`
	MaxAttempts int     `json:"maxAttempts"`
}

type newSessionRes struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Strategy    string    `json:"strategy"`
	MaxAttempts int       `json:"maxAttempts"`
	Remaining   int       `json:"remaining"`
}

// sessionOptions fills request gaps from the server configuration.
func (s *Server) sessionOptions(strategy string, k float64, maxAttempts int) solver.SessionOptions {
	opts := solver.SessionOptions{Strategy: strategy, K: k, MaxAttempts: maxAttempts}
	if opts.Strategy == "" {
		opts.Strategy = s.deps.Config.Strategy
	}
	if opts.K == 0 {
		opts.K = s.deps.Config.ScoreK
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = s.deps.Config.MaxAttempts
	}
	return opts
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.deps.Engine.NewSession(s.sessionOptions(req.Strategy, req.K, req.MaxAttempts))
	if err != nil {
		fail(w, r, err)
		return
	}
	id := uuid.NewString()
	tok, exp, err := s.signSessionToken(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	if err := s.sessions.Save(r.Context(), id, &liveSession{s: sess}); err != nil {
		fail(w, r, err)
		return
	}
	s.deps.Metrics.SessionsStarted.WithLabelValues(sess.Strategy()).Inc()
	log.Info().Str("session", id).Str("strategy", sess.Strategy()).Msg("session started")

	writeJSON(w, http.StatusCreated, newSessionRes{
		ID:          id,
		Token:       tok,
		ExpiresAt:   exp,
		Strategy:    sess.Strategy(),
		MaxAttempts: sess.MaxAttempts(),
		Remaining:   sess.RemainingCount(),
	})
}

type sessionStateRes struct {
	State       string        `json:"state"`
	Attempts    int           `json:"attempts"`
	MaxAttempts int           `json:"maxAttempts"`
	Remaining   int           `json:"remaining"`
	Answers     []string      `json:"answers,omitempty"`
	Pending     string        `json:"pending,omitempty"`
	History     []historyTurn `json:"history"`
}

type historyTurn struct {
	Guess     string `json:"guess"`
	Pattern   string `json:"pattern"`
	Remaining int    `json:"remaining"`
}

func (s *Server) stateOf(sess *solver.Session) sessionStateRes {
	res := sessionStateRes{
		State:       sess.State().String(),
		Attempts:    sess.Attempts(),
		MaxAttempts: sess.MaxAttempts(),
		Remaining:   sess.RemainingCount(),
		History:     []historyTurn{},
	}
	if res.Remaining <= listRemaining {
		res.Answers = sess.Remaining()
	}
	if p, ok := sess.Pending(); ok {
		res.Pending = p
	}
	length := s.deps.Engine.Length()
	for _, t := range sess.History() {
		p, _ := t.Code.Pattern(length)
		res.History = append(res.History, historyTurn{Guess: t.Guess, Pattern: p, Remaining: t.Remaining})
	}
	return res
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	ls, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	writeJSON(w, http.StatusOK, s.stateOf(ls.s))
}

type nextGuessRes struct {
	Guess      string             `json:"guess"`
	Attempt    int                `json:"attempt"`
	Remaining  int                `json:"remaining"`
	Candidates []solver.Candidate `json:"candidates"`
}

// handleNextGuess returns the recommendation plus the top-N ranked guesses
// (?top=N, default 5).
func (s *Server) handleNextGuess(w http.ResponseWriter, r *http.Request) {
	top := defaultTop
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_top")
			return
		}
		top = min(n, maxTop)
	}
	ls, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	guess, err := ls.s.NextGuess()
	if err != nil {
		fail(w, r, err)
		return
	}
	res := nextGuessRes{
		Guess:      guess,
		Attempt:    ls.s.Attempts() + 1,
		Remaining:  ls.s.RemainingCount(),
		Candidates: []solver.Candidate{},
	}
	if top > 0 && res.Remaining > 1 {
		if res.Candidates, err = ls.s.Candidates(top); err != nil {
			fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type feedbackReq struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
	Code    *int   `json:"code"`
}

// parse resolves the feedback code from either representation.
func (req feedbackReq) parse(length int) (feedback.Code, error) {
	if req.Pattern != "" {
		if len(req.Pattern) != length {
			return 0, feedback.ErrInvalidCode
		}
		return feedback.ParsePattern(req.Pattern)
	}
	if req.Code == nil || *req.Code < 0 || *req.Code >= feedback.Space(length) {
		return 0, feedback.ErrInvalidCode
	}
	return feedback.Code(*req.Code), nil
}

// handleFeedback applies the observed feedback. An optional guess replaces
// the outstanding recommendation (the user played something else).
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	length := s.deps.Engine.Length()
	code, err := req.parse(length)
	if err != nil {
		fail(w, r, err)
		return
	}
	ls, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if g := strings.ToLower(strings.TrimSpace(req.Guess)); g != "" {
		if err := ls.s.Play(g); err != nil {
			fail(w, r, err)
			return
		}
	}
	state, err := ls.s.ReportFeedback(code)
	if err != nil {
		fail(w, r, err)
		return
	}
	s.deps.Metrics.Guesses.Inc()
	if state != solver.Continuing {
		s.deps.Metrics.SessionsEnded.WithLabelValues(ls.s.Strategy(), state.String()).Inc()
		log.Info().
			Str("session", chi.URLParam(r, "id")).
			Str("state", state.String()).
			Int("attempts", ls.s.Attempts()).
			Msg("session finished")
	}
	writeJSON(w, http.StatusOK, s.stateOf(ls.s))
}

// ------------------------------ JWT tokens ---------------------------------

// signSessionToken creates an HS256 JWT bound to one session id.
func (s *Server) signSessionToken(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(time.Duration(s.deps.Config.JWTExpiresHours) * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.deps.Config.JWTSecret))
	return ss, exp, err
}

// requireSessionToken enforces a valid bearer token whose sid matches the
// {id} URL parameter.
func (s *Server) requireSessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.deps.Config.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		sid, _ := claims["sid"].(string)
		if sid == "" || sid != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearer extracts the token from an "Authorization: Bearer" header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
