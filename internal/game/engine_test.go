package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxh90/WordleSolver/internal/feedback"
)

type dict map[string]bool

func (d dict) IsAllowed(w string) bool { return d[w] }

var testDict = dict{"crane": true, "grape": true, "speed": true, "crepe": true}

func TestApplyGuessWin(t *testing.T) {
	g := New(testDict, "Grape", 0)
	require.Equal(t, "grape", g.Answer)
	require.Equal(t, 6, g.Rows)
	require.NotEmpty(t, g.ID)

	code, state, err := g.ApplyGuess("crane")
	require.NoError(t, err)
	require.Equal(t, StatePlaying, state)
	require.Equal(t, "02202", g.Turns[0].Pattern)

	marks, err := Marks(code, 5)
	require.NoError(t, err)
	require.Equal(t, []Mark{MarkMiss, MarkHit, MarkHit, MarkMiss, MarkHit}, marks)

	code, state, err = g.ApplyGuess(" GRAPE ")
	require.NoError(t, err)
	require.Equal(t, feedback.Solved(5), code)
	require.Equal(t, StateWon, state)

	_, _, err = g.ApplyGuess("crane")
	require.ErrorIs(t, err, ErrFinished)
}

func TestApplyGuessLoss(t *testing.T) {
	g := New(testDict, "crepe", 2)
	_, state, err := g.ApplyGuess("crane")
	require.NoError(t, err)
	require.Equal(t, StatePlaying, state)

	code, state, err := g.ApplyGuess("speed")
	require.NoError(t, err)
	require.Equal(t, StateLost, state)
	require.Equal(t, feedback.Code(48), code)
}

func TestApplyGuessValidation(t *testing.T) {
	g := New(testDict, "crepe", 0)
	_, _, err := g.ApplyGuess("cran")
	require.ErrorIs(t, err, ErrInvalidGuess)
	_, _, err = g.ApplyGuess("cr4ne")
	require.ErrorIs(t, err, ErrInvalidGuess)
	_, _, err = g.ApplyGuess("fjord")
	require.ErrorIs(t, err, ErrNotInWordList)
	require.Empty(t, g.Turns)
}
