// internal/solver/session.go
//
// Session is one solving run over a single board.
//
// Flow:
//   NextGuess()          → awaiting feedback (the guess is outstanding)
//   ReportFeedback(code) → Solved | Exhausted | Continuing (awaiting a guess)
//
// Interactive and automated callers drive the same two calls; the session
// owns its answer set and is not safe for concurrent use.
package solver

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fxh90/WordleSolver/internal/feedback"
)

// DefaultMaxAttempts is the guess budget of a single board.
const DefaultMaxAttempts = 6

// State is the outcome reported after each feedback.
type State int

const (
	Continuing State = iota
	Solved
	Exhausted
)

func (s State) String() string {
	switch s {
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	default:
		return "continuing"
	}
}

type phase int

const (
	awaitingGuess phase = iota
	awaitingFeedback
	finished
)

// Turn records one completed guess.
type Turn struct {
	Guess     string        `json:"guess"`
	Code      feedback.Code `json:"code"`
	Remaining int           `json:"remaining"`
}

// SessionOptions configures a session. Zero values select the defaults.
type SessionOptions struct {
	MaxAttempts int
	Strategy    string
	K           float64
}

// Session is the guess/feedback state machine for one board.
type Session struct {
	engine      *Engine
	score       ScoreFunc
	strategy    string
	maxAttempts int

	remaining *AnswerSet
	attempts  int
	phase     phase
	state     State
	pending   string
	history   []Turn
}

// NewSession starts a session over the engine's full answer set.
func (e *Engine) NewSession(opts SessionOptions) (*Session, error) {
	if opts.Strategy == "" {
		opts.Strategy = StrategyEntropy
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	score, err := LookupStrategy(opts.Strategy, opts.K)
	if err != nil {
		return nil, err
	}
	return &Session{
		engine:      e,
		score:       score,
		strategy:    opts.Strategy,
		maxAttempts: opts.MaxAttempts,
		remaining:   e.FullSet(),
	}, nil
}

// NextGuess returns the guess to play. While a guess is outstanding it is
// returned again unchanged.
func (s *Session) NextGuess() (string, error) {
	switch s.phase {
	case finished:
		return "", ErrSessionFinished
	case awaitingFeedback:
		return s.pending, nil
	}

	// A single remaining answer is the guess; no entropy needed.
	if s.remaining.Len() == 1 {
		s.pending = s.engine.answers[s.remaining.Indices()[0]]
	} else {
		gi, err := s.engine.Best(s.remaining, s.score)
		if err != nil {
			return "", err
		}
		s.pending = s.engine.guesses[gi]
	}
	s.phase = awaitingFeedback

	log.Debug().
		Str("guess", s.pending).
		Int("attempt", s.attempts+1).
		Int("remaining", s.remaining.Len()).
		Msg("solver: next guess")
	return s.pending, nil
}

// Play makes word the outstanding guess in place of any recommendation.
func (s *Session) Play(word string) error {
	if s.phase == finished {
		return ErrSessionFinished
	}
	if !s.engine.IsLegal(word) {
		return fmt.Errorf("%w: %q", ErrUnknownGuess, word)
	}
	s.pending = word
	s.phase = awaitingFeedback
	return nil
}

// ReportFeedback applies the feedback observed for the outstanding guess.
// When the feedback contradicts every remaining answer, ErrEmptyAnswerSet is
// returned and the session is left unchanged so the caller can correct it.
func (s *Session) ReportFeedback(code feedback.Code) (State, error) {
	switch s.phase {
	case finished:
		return s.state, ErrSessionFinished
	case awaitingGuess:
		return s.state, ErrNoPendingGuess
	}
	if !code.Valid(s.engine.length) {
		return s.state, fmt.Errorf("%w: %d", feedback.ErrInvalidCode, code)
	}

	if code == feedback.Solved(s.engine.length) {
		s.attempts++
		s.remaining = s.engine.SetOf([]string{s.pending})
		s.history = append(s.history, Turn{Guess: s.pending, Code: code, Remaining: 1})
		s.finish(Solved)
		return s.state, nil
	}

	next, err := s.engine.Refine(s.pending, s.remaining, code)
	if err != nil {
		return s.state, err
	}
	s.attempts++
	s.remaining = next
	s.history = append(s.history, Turn{Guess: s.pending, Code: code, Remaining: next.Len()})

	if s.attempts >= s.maxAttempts {
		s.finish(Exhausted)
		return s.state, nil
	}
	s.phase = awaitingGuess
	s.pending = ""
	return Continuing, nil
}

func (s *Session) finish(st State) {
	s.state = st
	s.phase = finished
	log.Debug().
		Str("state", st.String()).
		Int("attempts", s.attempts).
		Msg("solver: session finished")
}

// State returns the current outcome.
func (s *Session) State() State { return s.state }

// Done reports whether the session reached Solved or Exhausted.
func (s *Session) Done() bool { return s.phase == finished }

// Pending returns the outstanding guess, if any.
func (s *Session) Pending() (string, bool) {
	return s.pending, s.phase == awaitingFeedback
}

// Attempts is the number of guesses whose feedback has been applied.
func (s *Session) Attempts() int { return s.attempts }

// MaxAttempts is the session's guess budget.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// Strategy is the name of the scoring strategy in use.
func (s *Session) Strategy() string { return s.strategy }

// Remaining lists the potential answers in dictionary order.
func (s *Session) Remaining() []string { return s.engine.Words(s.remaining) }

// RemainingCount is the number of potential answers.
func (s *Session) RemainingCount() int { return s.remaining.Len() }

// AnswerSet returns a copy of the current potential answer set.
func (s *Session) AnswerSet() *AnswerSet { return s.remaining.Clone() }

// History returns the completed turns.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Vectors computes the per-guess vectors against the current answer set.
func (s *Session) Vectors() (Vectors, error) {
	return s.engine.Vectors(s.remaining, s.score)
}

// Candidates ranks the top n guesses against the current answer set.
func (s *Session) Candidates(n int) ([]Candidate, error) {
	return s.engine.Rank(s.remaining, s.score, n)
}
