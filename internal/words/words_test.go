package words

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	l, err := Load(Source{})
	require.NoError(t, err)
	require.Equal(t, 5, l.Length())
	require.NotEmpty(t, l.Answers)
	require.True(t, sort.StringsAreSorted(l.Guesses))

	for _, a := range l.Answers {
		require.True(t, l.IsAllowed(a), a)
		require.True(t, l.IsAnswer(a), a)
	}
	require.True(t, l.IsAllowed("fjord"))
	require.False(t, l.IsAnswer("fjord"))

	a, g := l.Stats()
	require.Equal(t, len(l.Answers), a)
	require.Greater(t, g, a)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("Crane\n grape \ncrane\ntoolong\nab1de\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("fjord\nsalet\n"), 0o644))

	l, err := Load(Source{AnswersFile: answers, AllowedFile: allowed})
	require.NoError(t, err)
	require.Equal(t, []string{"crane", "grape"}, l.Answers)
	require.Equal(t, []string{"crane", "fjord", "grape", "salet"}, l.Guesses)

	only, err := Load(Source{AllowedFile: allowed})
	require.NoError(t, err)
	require.Equal(t, []string{"fjord", "salet"}, only.Answers)
}

func TestLoadOtherLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "six.txt")
	require.NoError(t, os.WriteFile(path, []byte("planet\ncrane\nrocket\n"), 0o644))

	l, err := Load(Source{AllowedFile: path, Length: 6})
	require.NoError(t, err)
	require.Equal(t, []string{"planet", "rocket"}, l.Answers)
}

func TestLoadErrors(t *testing.T) {
	_, err := New([]string{"toolong"}, nil, 5)
	require.ErrorIs(t, err, ErrEmptyAnswers)

	_, err = Load(Source{AllowedFile: filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, err)

	_, err = Load(Source{Length: 11})
	require.Error(t, err)
}

func TestNormalizeAndRandom(t *testing.T) {
	l, err := New([]string{"crane", "grape"}, nil, 5)
	require.NoError(t, err)

	w, ok := l.Normalize("  CRANE ")
	require.True(t, ok)
	require.Equal(t, "crane", w)
	_, ok = l.Normalize("cran3")
	require.False(t, ok)

	for i := 0; i < 10; i++ {
		require.True(t, l.IsAnswer(l.RandomAnswer()))
	}
}
