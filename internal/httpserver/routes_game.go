// internal/httpserver/routes_game.go
//
// Hidden-answer puzzles, the same responder the simulator plays against:
//   - POST /game/new   → start a puzzle (random answer unless one is given)
//   - POST /game/guess → score a guess

package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/game"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
}

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
	Rows   int    `json:"rows"`
}

type newGameRes struct {
	GameID string `json:"gameId"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if answer == "" {
		answer = s.deps.Words.RandomAnswer()
	} else if !s.deps.Words.IsAllowed(answer) {
		fail(w, r, game.ErrNotInWordList)
		return
	}
	rows := req.Rows
	if rows <= 0 {
		rows = s.deps.Config.MaxAttempts
	}
	g := game.New(s.deps.Words, answer, rows)
	if err := s.games.Save(r.Context(), g.ID, &liveGame{g: g}); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Rows: g.Rows, Cols: g.Cols})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Marks   []game.Mark   `json:"marks"`
	Code    feedback.Code `json:"code"`
	Pattern string        `json:"pattern"`
	State   game.State    `json:"state"`
	Answer  string        `json:"answer,omitempty"` // revealed once lost
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	lg, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		fail(w, r, err)
		return
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()

	code, state, err := lg.g.ApplyGuess(req.Guess)
	if err != nil {
		fail(w, r, err)
		return
	}
	marks, err := game.Marks(code, lg.g.Cols)
	if err != nil {
		fail(w, r, err)
		return
	}
	res := guessRes{Marks: marks, Code: code, State: state}
	res.Pattern, _ = code.Pattern(lg.g.Cols)
	if state == game.StateLost {
		res.Answer = lg.g.Answer
	}
	writeJSON(w, http.StatusOK, res)
}
