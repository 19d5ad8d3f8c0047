// internal/game/types.go
//
// Core type definitions for the hidden-answer puzzle.
// Defines:
//   - State: coarse game status (playing/won/lost).
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Game: state for a single in-progress or finished puzzle.

package game

import "github.com/fxh90/WordleSolver/internal/feedback"

// State reports whether the puzzle is still running.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Mark represents the evaluation result for a single letter in a guess.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Dictionary is the legal guess check a game validates against.
type Dictionary interface {
	IsAllowed(w string) bool
}

// Turn is one scored guess.
type Turn struct {
	Guess   string        `json:"guess"`
	Code    feedback.Code `json:"code"`
	Pattern string        `json:"pattern"`
}

// Game holds the state of a single puzzle.
type Game struct {
	ID       string // Unique game identifier (UUID).
	Answer   string // The solution word (always lowercase).
	Rows     int    // Maximum number of guesses allowed.
	Cols     int    // Number of letters per word.
	Turns    []Turn // Guesses made so far with their feedback.
	Finished bool   // True once the game is over (won or lost).
	Won      bool   // True if the game was finished with a win.

	dict Dictionary
}
