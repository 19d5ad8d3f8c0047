package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var answers = []string{"crane", "grape", "robin", "light", "water"}

func TestForIsStableWithinADay(t *testing.T) {
	p := NewPicker("salt", answers)
	morning := p.For(time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC))
	evening := p.For(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC))

	require.Equal(t, "2024-03-09", morning.Date)
	require.Equal(t, morning, evening)
	require.Equal(t, answers[morning.Index], morning.Word)
}

func TestForUsesUTC(t *testing.T) {
	p := NewPicker("salt", answers)
	tz := time.FixedZone("UTC+10", 10*3600)
	local := time.Date(2024, 3, 10, 5, 0, 0, 0, tz) // 2024-03-09 19:00 UTC
	require.Equal(t, p.For(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)), p.For(local))
}

func TestForCoversDictionary(t *testing.T) {
	p := NewPicker("salt", answers)
	seen := map[string]bool{}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		seen[p.For(day.AddDate(0, 0, i)).Word] = true
	}
	require.Len(t, seen, len(answers))
}

func TestSaltChangesSchedule(t *testing.T) {
	a, b := NewPicker("one", answers), NewPicker("two", answers)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	differs := false
	for i := 0; i < 30 && !differs; i++ {
		d := day.AddDate(0, 0, i)
		differs = a.For(d).Word != b.For(d).Word
	}
	require.True(t, differs)
}

func TestForEmpty(t *testing.T) {
	tg := NewPicker("salt", nil).For(time.Now())
	require.NotEmpty(t, tg.Date)
	require.Empty(t, tg.Word)
}
