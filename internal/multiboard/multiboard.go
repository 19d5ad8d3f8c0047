// Package multiboard plays one shared guess across several independent
// boards (Quordle style). Each board is its own solver session; the
// aggregator averages their score vectors to choose the guess.
package multiboard

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/solver"
)

const (
	// DefaultBoards is the Quordle board count.
	DefaultBoards = 4
	// DefaultMaxAttempts is the shared guess budget across all boards.
	DefaultMaxAttempts = 9
)

// Puzzle aggregates one session per board.
type Puzzle struct {
	engine      *solver.Engine
	boards      []*solver.Session
	maxAttempts int
	attempts    int
	pending     string
	state       solver.State
}

// New starts n boards sharing engine. Zero values select the defaults.
func New(engine *solver.Engine, n int, opts solver.SessionOptions) (*Puzzle, error) {
	if n <= 0 {
		n = DefaultBoards
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	p := &Puzzle{engine: engine, maxAttempts: opts.MaxAttempts}
	for i := 0; i < n; i++ {
		s, err := engine.NewSession(opts)
		if err != nil {
			return nil, err
		}
		p.boards = append(p.boards, s)
	}
	return p, nil
}

// Boards returns the per-board sessions.
func (p *Puzzle) Boards() []*solver.Session { return p.boards }

// Attempts is the number of shared guesses played.
func (p *Puzzle) Attempts() int { return p.attempts }

// State is Solved once every board is solved, Exhausted once the budget is
// spent, Continuing otherwise.
func (p *Puzzle) State() solver.State { return p.state }

func (p *Puzzle) open() []*solver.Session {
	var out []*solver.Session
	for _, b := range p.boards {
		if !b.Done() {
			out = append(out, b)
		}
	}
	return out
}

// NextGuess returns the shared guess for all unsolved boards. A board with a
// single remaining answer is finished off first; otherwise the guess with
// the best mean score over unsolved boards wins.
func (p *Puzzle) NextGuess() (string, error) {
	if p.state != solver.Continuing {
		return "", solver.ErrSessionFinished
	}
	if p.pending != "" {
		return p.pending, nil
	}
	open := p.open()
	for _, b := range open {
		if b.RemainingCount() == 1 {
			p.pending = b.Remaining()[0]
			return p.pending, nil
		}
	}

	vectors := make([]solver.Vectors, len(open))
	var g errgroup.Group
	for i, b := range open {
		i, b := i, b
		g.Go(func() error {
			v, err := b.Vectors()
			if err != nil {
				return err
			}
			vectors[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	mean := Aggregate(vectors)
	p.pending = p.engine.Guesses()[solver.Argmax(mean.Scores)]
	return p.pending, nil
}

// Aggregate averages per-board vectors element-wise.
func Aggregate(vs []solver.Vectors) solver.Vectors {
	if len(vs) == 0 {
		return solver.Vectors{}
	}
	n := len(vs[0].Scores)
	out := solver.Vectors{
		Entropies:     make([]float64, n),
		Probabilities: make([]float64, n),
		Scores:        make([]float64, n),
	}
	for _, v := range vs {
		for i := 0; i < n; i++ {
			out.Entropies[i] += v.Entropies[i]
			out.Probabilities[i] += v.Probabilities[i]
			out.Scores[i] += v.Scores[i]
		}
	}
	k := float64(len(vs))
	for i := 0; i < n; i++ {
		out.Entropies[i] /= k
		out.Probabilities[i] /= k
		out.Scores[i] /= k
	}
	return out
}

// Play makes word the shared guess in place of the recommendation.
func (p *Puzzle) Play(word string) error {
	if p.state != solver.Continuing {
		return solver.ErrSessionFinished
	}
	if !p.engine.IsLegal(word) {
		return fmt.Errorf("%w: %q", solver.ErrUnknownGuess, word)
	}
	p.pending = word
	return nil
}

// ReportFeedback applies one code per board (codes for already solved
// boards are ignored). Boards are validated before any is updated, so a
// contradictory code leaves the puzzle unchanged.
func (p *Puzzle) ReportFeedback(codes []feedback.Code) (solver.State, error) {
	if p.state != solver.Continuing {
		return p.state, solver.ErrSessionFinished
	}
	if p.pending == "" {
		return p.state, solver.ErrNoPendingGuess
	}
	if len(codes) != len(p.boards) {
		return p.state, fmt.Errorf("multiboard: %d codes for %d boards", len(codes), len(p.boards))
	}

	for i, b := range p.boards {
		if b.Done() || codes[i] == feedback.Solved(p.engine.Length()) {
			continue
		}
		if _, err := p.engine.Refine(p.pending, b.AnswerSet(), codes[i]); err != nil {
			return p.state, fmt.Errorf("board %d: %w", i+1, err)
		}
	}

	for i, b := range p.boards {
		if b.Done() {
			continue
		}
		if err := b.Play(p.pending); err != nil {
			return p.state, fmt.Errorf("board %d: %w", i+1, err)
		}
		if _, err := b.ReportFeedback(codes[i]); err != nil {
			return p.state, fmt.Errorf("board %d: %w", i+1, err)
		}
	}
	p.attempts++
	p.pending = ""

	switch {
	case p.allSolved():
		p.state = solver.Solved
	case p.attempts >= p.maxAttempts:
		p.state = solver.Exhausted
	}
	return p.state, nil
}

func (p *Puzzle) allSolved() bool {
	for _, b := range p.boards {
		if b.State() != solver.Solved {
			return false
		}
	}
	return true
}
