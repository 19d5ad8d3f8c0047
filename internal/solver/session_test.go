package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxh90/WordleSolver/internal/feedback"
)

func mustEncode(t *testing.T, guess, target string) feedback.Code {
	t.Helper()
	c, err := feedback.Encode(guess, target)
	require.NoError(t, err)
	return c
}

func TestSessionWorkedExample(t *testing.T) {
	words := []string{"crane", "crate", "grape"}
	e, err := NewEngine(words, words)
	require.NoError(t, err)
	s, err := e.NewSession(SessionOptions{})
	require.NoError(t, err)

	guess, err := s.NextGuess()
	require.NoError(t, err)
	require.Equal(t, "crane", guess)

	code := mustEncode(t, guess, "grape")
	pattern, err := code.Pattern(5)
	require.NoError(t, err)
	require.Equal(t, "02202", pattern)

	state, err := s.ReportFeedback(code)
	require.NoError(t, err)
	require.Equal(t, Continuing, state)
	require.Equal(t, []string{"grape"}, s.Remaining())

	runs := e.EntropyRuns()
	guess, err = s.NextGuess()
	require.NoError(t, err)
	require.Equal(t, "grape", guess)
	require.Equal(t, runs, e.EntropyRuns(), "a single remaining answer is guessed directly")

	state, err = s.ReportFeedback(feedback.Solved(5))
	require.NoError(t, err)
	require.Equal(t, Solved, state)
	require.Equal(t, 2, s.Attempts())
	require.True(t, s.Done())

	h := s.History()
	require.Len(t, h, 2)
	require.Equal(t, "crane", h[0].Guess)
	require.Equal(t, 1, h[0].Remaining)
	require.Equal(t, feedback.Solved(5), h[1].Code)
}

func TestSessionNextGuessIsStable(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.NewSession(SessionOptions{})
	require.NoError(t, err)

	g1, err := s.NextGuess()
	require.NoError(t, err)
	runs := e.EntropyRuns()
	g2, err := s.NextGuess()
	require.NoError(t, err)
	require.Equal(t, g1, g2)
	require.Equal(t, runs, e.EntropyRuns())

	pending, ok := s.Pending()
	require.True(t, ok)
	require.Equal(t, g1, pending)
}

func TestSessionFeedbackOrdering(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.NewSession(SessionOptions{})
	require.NoError(t, err)

	_, err = s.ReportFeedback(0)
	require.ErrorIs(t, err, ErrNoPendingGuess)

	_, err = s.NextGuess()
	require.NoError(t, err)
	_, err = s.ReportFeedback(feedback.Code(243))
	require.ErrorIs(t, err, feedback.ErrInvalidCode)
}

func TestSessionContradictoryFeedbackLeavesStateAlone(t *testing.T) {
	words := []string{"crane", "crate", "grape"}
	e, err := NewEngine(words, words)
	require.NoError(t, err)
	s, err := e.NewSession(SessionOptions{})
	require.NoError(t, err)

	guess, err := s.NextGuess()
	require.NoError(t, err)

	// All misses is impossible: every answer shares r and a with crane.
	_, err = s.ReportFeedback(feedback.Code(0))
	require.ErrorIs(t, err, ErrEmptyAnswerSet)
	require.Equal(t, 0, s.Attempts())
	require.Equal(t, 3, s.RemainingCount())

	pending, ok := s.Pending()
	require.True(t, ok)
	require.Equal(t, guess, pending)

	state, err := s.ReportFeedback(mustEncode(t, guess, "crate"))
	require.NoError(t, err)
	require.Equal(t, Continuing, state)
	require.Equal(t, []string{"crate"}, s.Remaining())
}

func TestSessionExhausted(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.NewSession(SessionOptions{MaxAttempts: 1})
	require.NoError(t, err)

	guess, err := s.NextGuess()
	require.NoError(t, err)
	target := "tight"
	if guess == target {
		target = "night"
	}
	state, err := s.ReportFeedback(mustEncode(t, guess, target))
	require.NoError(t, err)
	require.Equal(t, Exhausted, state)
	require.Equal(t, Exhausted, s.State())

	_, err = s.NextGuess()
	require.ErrorIs(t, err, ErrSessionFinished)
	_, err = s.ReportFeedback(0)
	require.ErrorIs(t, err, ErrSessionFinished)
	require.ErrorIs(t, s.Play("crane"), ErrSessionFinished)
}

func TestSessionPlayOverridesRecommendation(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.NewSession(SessionOptions{Strategy: StrategyEntropyProbability})
	require.NoError(t, err)
	require.Equal(t, StrategyEntropyProbability, s.Strategy())

	require.ErrorIs(t, s.Play("zzzzz"), ErrUnknownGuess)
	require.NoError(t, s.Play("fjord"))

	state, err := s.ReportFeedback(mustEncode(t, "fjord", "brown"))
	require.NoError(t, err)
	require.Equal(t, Continuing, state)
	for _, w := range s.Remaining() {
		require.Equal(t, mustEncode(t, "fjord", "brown"), mustEncode(t, "fjord", w))
	}
	require.Equal(t, "fjord", s.History()[0].Guess)
}

func TestSessionSolvesEveryAnswer(t *testing.T) {
	e := newTestEngine(t)
	for _, strategy := range Strategies() {
		for _, target := range testAnswers {
			s, err := e.NewSession(SessionOptions{Strategy: strategy})
			require.NoError(t, err)

			var state State
			for !s.Done() {
				guess, err := s.NextGuess()
				require.NoError(t, err)
				before := s.AnswerSet()
				state, err = s.ReportFeedback(mustEncode(t, guess, target))
				require.NoError(t, err)
				require.True(t, s.AnswerSet().SubsetOf(before))
				require.Contains(t, s.Remaining(), target)
			}
			require.Equal(t, Solved, state, "%s with %s", target, strategy)
			require.LessOrEqual(t, s.Attempts(), DefaultMaxAttempts)
		}
	}
}

func TestNewSessionUnknownStrategy(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.NewSession(SessionOptions{Strategy: "random"})
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestSessionCandidates(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.NewSession(SessionOptions{})
	require.NoError(t, err)

	top, err := s.Candidates(3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.GreaterOrEqual(t, top[0].Score, top[1].Score)
	require.GreaterOrEqual(t, top[1].Score, top[2].Score)

	guess, err := s.NextGuess()
	require.NoError(t, err)
	require.Equal(t, top[0].Word, guess)
}
