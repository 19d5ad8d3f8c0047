package multiboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/solver"
	"github.com/fxh90/WordleSolver/internal/words"
)

func newEngine(t *testing.T) *solver.Engine {
	t.Helper()
	lists, err := words.Load(words.Source{})
	require.NoError(t, err)
	e, err := solver.NewEngine(lists.Guesses, lists.Answers)
	require.NoError(t, err)
	return e
}

func codesFor(t *testing.T, guess string, targets []string) []feedback.Code {
	t.Helper()
	out := make([]feedback.Code, len(targets))
	for i, target := range targets {
		c, err := feedback.Encode(guess, target)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestPuzzleSolvesFourBoards(t *testing.T) {
	e := newEngine(t)
	targets := []string{"robin", "crane", "light", "water"}
	p, err := New(e, len(targets), solver.SessionOptions{})
	require.NoError(t, err)

	for p.State() == solver.Continuing {
		guess, err := p.NextGuess()
		require.NoError(t, err)
		_, err = p.ReportFeedback(codesFor(t, guess, targets))
		require.NoError(t, err)
	}
	require.Equal(t, solver.Solved, p.State())
	require.LessOrEqual(t, p.Attempts(), DefaultMaxAttempts)
	require.GreaterOrEqual(t, p.Attempts(), len(targets))
	for i, b := range p.Boards() {
		require.Equal(t, solver.Solved, b.State())
		require.Equal(t, []string{targets[i]}, b.Remaining())
	}

	_, err = p.NextGuess()
	require.ErrorIs(t, err, solver.ErrSessionFinished)
}

func TestPuzzleRejectsBadFeedback(t *testing.T) {
	e := newEngine(t)
	p, err := New(e, 2, solver.SessionOptions{})
	require.NoError(t, err)

	_, err = p.ReportFeedback([]feedback.Code{0, 0})
	require.ErrorIs(t, err, solver.ErrNoPendingGuess)

	require.NoError(t, p.Play("crane"))
	_, err = p.ReportFeedback([]feedback.Code{0})
	require.Error(t, err)

	// The second board's code is impossible; neither board may change.
	good := codesFor(t, "crane", []string{"robin"})[0]
	_, err = p.ReportFeedback([]feedback.Code{good, feedback.Code(242 - 1)})
	require.ErrorIs(t, err, solver.ErrEmptyAnswerSet)
	require.Equal(t, 0, p.Attempts())
	for _, b := range p.Boards() {
		require.Equal(t, len(e.Answers()), b.RemainingCount())
	}

	require.ErrorIs(t, p.Play("zzzzz"), solver.ErrUnknownGuess)
}

func TestPuzzleExhausted(t *testing.T) {
	e := newEngine(t)
	targets := []string{"robin", "crane"}
	p, err := New(e, 2, solver.SessionOptions{MaxAttempts: 1})
	require.NoError(t, err)

	guess, err := p.NextGuess()
	require.NoError(t, err)
	state, err := p.ReportFeedback(codesFor(t, guess, targets))
	require.NoError(t, err)
	require.Equal(t, solver.Exhausted, state)
}

func TestAggregate(t *testing.T) {
	mean := Aggregate([]solver.Vectors{
		{Entropies: []float64{1, 2}, Probabilities: []float64{0, 0.5}, Scores: []float64{1, 4}},
		{Entropies: []float64{3, 0}, Probabilities: []float64{0.5, 0}, Scores: []float64{3, 0}},
	})
	require.Equal(t, []float64{2, 1}, mean.Entropies)
	require.Equal(t, []float64{0.25, 0.25}, mean.Probabilities)
	require.Equal(t, []float64{2, 2}, mean.Scores)
	require.Empty(t, Aggregate(nil).Scores)
}
