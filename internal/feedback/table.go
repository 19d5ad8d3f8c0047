package feedback

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Table is a precomputed guess×answer code matrix. It is read-only after
// construction and safe to share between sessions.
type Table struct {
	length  int
	guesses int
	answers int
	codes   []Code // row-major: codes[g*answers+a]
}

// NewTable encodes every guess against every answer. Rows are filled in
// parallel by up to workers goroutines (GOMAXPROCS when workers <= 0).
func NewTable(guesses, answers []string, workers int) (*Table, error) {
	length, err := commonLength(guesses, answers)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	t := &Table{
		length:  length,
		guesses: len(guesses),
		answers: len(answers),
		codes:   make([]Code, len(guesses)*len(answers)),
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for gi := range guesses {
		gi := gi
		g.Go(func() error {
			row := t.codes[gi*t.answers : (gi+1)*t.answers]
			for ai, a := range answers {
				row[ai] = encode(guesses[gi], a)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

// At returns the code of guess g against answer a (dictionary indices).
func (t *Table) At(g, a int) Code { return t.codes[g*t.answers+a] }

// Row returns the codes of guess g against every answer. Callers must not modify it.
func (t *Table) Row(g int) []Code { return t.codes[g*t.answers : (g+1)*t.answers] }

// Length is the word length the table was built for.
func (t *Table) Length() int { return t.length }

// Size returns the table dimensions (guesses, answers).
func (t *Table) Size() (guesses, answers int) { return t.guesses, t.answers }

// commonLength checks that every word shares one encodable length.
func commonLength(lists ...[]string) (int, error) {
	length := -1
	for _, list := range lists {
		for _, w := range list {
			if length < 0 {
				length = len(w)
				continue
			}
			if len(w) != length {
				return 0, fmt.Errorf("%w: %q has length %d, expected %d", ErrLengthMismatch, w, len(w), length)
			}
		}
	}
	if length < 0 {
		return 0, nil
	}
	if !ValidLength(length) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return length, nil
}
