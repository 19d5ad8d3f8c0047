package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxh90/WordleSolver/internal/solver"
)

func newEngine(t *testing.T) *solver.Engine {
	t.Helper()
	words := []string{"crane", "crate", "grape"}
	e, err := solver.NewEngine(words, words)
	require.NoError(t, err)
	return e
}

func TestSolveManual(t *testing.T) {
	var out bytes.Buffer
	// 0220 is too short and 22221 contradicts every answer.
	in := strings.NewReader("0220\n22221\n02202\n22222\n")
	require.NoError(t, solveManual(newEngine(t), solver.SessionOptions{}, in, &out))

	text := out.String()
	require.Contains(t, text, "3 remaining, try crane")
	require.Contains(t, text, "no answer matches")
	require.Contains(t, text, "1 remaining, try grape")
	require.Contains(t, text, "solved in 2")
}

func TestSolveManualOverride(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("grape 22222\n")
	require.NoError(t, solveManual(newEngine(t), solver.SessionOptions{}, in, &out))
	require.Contains(t, out.String(), "solved in 1")
}

func TestSolveBoards(t *testing.T) {
	var out bytes.Buffer
	// Targets grape and crate.
	in := strings.NewReader("02202 22202\n22222 02202\n22222 22222\n")
	require.NoError(t, solveBoards(newEngine(t), 2, solver.SessionOptions{}, in, &out))

	text := out.String()
	require.Contains(t, text, "boards [3 3], try crane")
	require.Contains(t, text, "boards [1 1], try grape")
	require.Contains(t, text, "boards [done 1], try crate")
	require.Contains(t, text, "solved all boards in 3")
}

func TestRunOne(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runOne(newEngine(t), solver.SessionOptions{}, "grape", &out))
	require.True(t, strings.HasPrefix(out.String(), "1. crane 02202\n2. grape 22222\n"), out.String())
	require.Contains(t, out.String(), "solved grape in 2")

	require.Error(t, runOne(newEngine(t), solver.SessionOptions{}, "zzzzz", &out))
}

func TestRunBatch(t *testing.T) {
	var out bytes.Buffer
	e := newEngine(t)
	require.NoError(t, runBatch(context.Background(), e, solver.SessionOptions{}, e.Answers(), 2, &out))
	require.Contains(t, out.String(), "games 3")
	require.Contains(t, out.String(), "failed 0")

	require.Len(t, sampleAnswers(e.Answers(), 2), 2)
	require.Len(t, sampleAnswers(e.Answers(), 10), 3)
}
