package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxh90/WordleSolver/internal/solver"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultsAreValid(t *testing.T) {
	c, err := LoadFrom("", env(nil))
	require.NoError(t, err)
	require.Equal(t, Default(), c)
	require.Equal(t, 5, c.WordLength)
	require.Equal(t, 6, c.MaxAttempts)
	require.Equal(t, solver.StrategyEntropy, c.Strategy)
}

func TestYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nstrategy: entropy+probability\nscore_k: 1.5\nboards: 2\n"), 0o644))

	c, err := LoadFrom(path, env(map[string]string{"PORT": "9100", "MAX_ATTEMPTS": "8"}))
	require.NoError(t, err)
	require.Equal(t, "9100", c.Port)
	require.Equal(t, solver.StrategyEntropyProbability, c.Strategy)
	require.InDelta(t, 1.5, c.ScoreK, 1e-12)
	require.Equal(t, 2, c.Boards)
	require.Equal(t, 8, c.MaxAttempts)
}

func TestValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"bad int":      {"WORKERS": "many"},
		"bad float":    {"SCORE_K": "x"},
		"length":       {"WORD_LENGTH": "11"},
		"attempts":     {"MAX_ATTEMPTS": "0"},
		"strategy":     {"STRATEGY": "random"},
		"weight":       {"STRATEGY": "entropy+probability", "SCORE_K": "0.5"},
		"boards":       {"BOARDS": "0"},
		"negative":     {"CACHE_SIZE": "-1"},
		"token expiry": {"JWT_EXPIRES_HOURS": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom("", env(vars))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
	require.Error(t, err)
}
