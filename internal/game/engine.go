// internal/game/engine.go
//
// Puzzle engine for a single hidden answer.
// Responsibilities:
//   - Create games with a fixed answer or a random one.
//   - Validate and apply guesses (length, alphabetic, legal guess list).
//   - Score guesses with the feedback codec and track playing → won/lost.
//
// The simulator uses a Game as the responder that knows the hidden answer.
package game

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fxh90/WordleSolver/internal/feedback"
)

const defaultRows = 6

var (
	ErrFinished      = errors.New("game finished")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrNotInWordList = errors.New("not in word list")
)

// New constructs a game with the given answer. rows <= 0 selects six rows.
func New(dict Dictionary, answer string, rows int) *Game {
	if rows <= 0 {
		rows = defaultRows
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return &Game{
		ID:     uuid.NewString(),
		Answer: answer,
		Rows:   rows,
		Cols:   len(answer),
		Turns:  []Turn{},
		dict:   dict,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters a–z.
//   - Guess must be a legal guess.
//
// State transitions:
//   - All hits → Finished, Won.
//   - Else when the guesses reach g.Rows → Finished (loss).
func (g *Game) ApplyGuess(guess string) (feedback.Code, State, error) {
	if g.Finished {
		return 0, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return 0, g.State(), ErrInvalidGuess
	}
	if g.dict != nil && !g.dict.IsAllowed(guess) {
		return 0, g.State(), ErrNotInWordList
	}

	code, err := feedback.Encode(guess, g.Answer)
	if err != nil {
		return 0, g.State(), err
	}
	pattern, err := code.Pattern(g.Cols)
	if err != nil {
		return 0, g.State(), err
	}
	g.Turns = append(g.Turns, Turn{Guess: guess, Code: code, Pattern: pattern})

	if code == feedback.Solved(g.Cols) {
		g.Finished, g.Won = true, true
	} else if len(g.Turns) >= g.Rows {
		g.Finished = true
	}
	return code, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Marks expands a code into per-letter marks.
func Marks(code feedback.Code, length int) ([]Mark, error) {
	digits, err := code.Digits(length)
	if err != nil {
		return nil, err
	}
	out := make([]Mark, length)
	for i, d := range digits {
		switch d {
		case feedback.Hit:
			out[i] = MarkHit
		case feedback.Present:
			out[i] = MarkPresent
		default:
			out[i] = MarkMiss
		}
	}
	return out, nil
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
