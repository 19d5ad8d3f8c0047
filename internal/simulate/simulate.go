// internal/simulate/simulate.go
//
// Automated solving: a solver session plays against a game that holds the
// hidden answer, and batches of such runs are summarized into a report.
package simulate

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fxh90/WordleSolver/internal/game"
	"github.com/fxh90/WordleSolver/internal/solver"
)

// DefaultMaxAttempts bounds a simulated run.
const DefaultMaxAttempts = 10

// Result is the outcome of one simulated run.
type Result struct {
	Answer   string        `json:"answer"`
	Strategy string        `json:"strategy"`
	Solved   bool          `json:"solved"`
	Attempts int           `json:"attempts"`
	Turns    []game.Turn   `json:"turns"`
	Elapsed  time.Duration `json:"elapsedNs"`
}

// Guesses lists the words played in order.
func (r Result) Guesses() []string {
	out := make([]string, len(r.Turns))
	for i, t := range r.Turns {
		out[i] = t.Guess
	}
	return out
}

type legal struct{ e *solver.Engine }

func (l legal) IsAllowed(w string) bool { return l.e.IsLegal(w) }

// Run solves answer with a fresh session.
func Run(e *solver.Engine, opts solver.SessionOptions, answer string) (Result, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	start := time.Now()
	s, err := e.NewSession(opts)
	if err != nil {
		return Result{}, err
	}
	g := game.New(legal{e}, answer, s.MaxAttempts())
	if !e.IsAnswer(g.Answer) {
		return Result{}, fmt.Errorf("simulate: %q is not in the answer dictionary", answer)
	}

	for !s.Done() {
		guess, err := s.NextGuess()
		if err != nil {
			return Result{}, fmt.Errorf("simulate %s: %w", answer, err)
		}
		code, _, err := g.ApplyGuess(guess)
		if err != nil {
			return Result{}, fmt.Errorf("simulate %s: %w", answer, err)
		}
		if _, err := s.ReportFeedback(code); err != nil {
			return Result{}, fmt.Errorf("simulate %s: %w", answer, err)
		}
	}

	return Result{
		Answer:   g.Answer,
		Strategy: s.Strategy(),
		Solved:   s.State() == solver.Solved,
		Attempts: s.Attempts(),
		Turns:    g.Turns,
		Elapsed:  time.Since(start),
	}, nil
}

// Report summarizes a batch.
type Report struct {
	Results   []Result    `json:"results"`
	Histogram map[int]int `json:"histogram"` // attempts → solved runs
	Failures  []string    `json:"failures"`
	Mean      float64     `json:"mean"` // mean attempts over solved runs
	Worst     int         `json:"worst"`
}

// Batch simulates every answer on up to workers goroutines (GOMAXPROCS when
// workers <= 0). onDone, if set, is called once per finished run and never
// concurrently. Results keep the order of answers.
func Batch(ctx context.Context, e *solver.Engine, opts solver.SessionOptions, answers []string, workers int, onDone func(Result)) (Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(answers))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, answer := range answers {
		if ctx.Err() != nil {
			break
		}
		i, answer := i, answer
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Run(e, opts, answer)
			if err != nil {
				return err
			}
			results[i] = r
			if onDone != nil {
				mu.Lock()
				onDone(r)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := Summarize(results)
	log.Debug().
		Int("runs", len(results)).
		Float64("mean", rep.Mean).
		Int("failures", len(rep.Failures)).
		Msg("simulate: batch finished")
	return rep, nil
}

// Summarize builds a report from finished runs.
func Summarize(results []Result) Report {
	rep := Report{Results: results, Histogram: map[int]int{}, Failures: []string{}}
	total, solved := 0, 0
	for _, r := range results {
		if !r.Solved {
			rep.Failures = append(rep.Failures, r.Answer)
			continue
		}
		solved++
		total += r.Attempts
		rep.Histogram[r.Attempts]++
		if r.Attempts > rep.Worst {
			rep.Worst = r.Attempts
		}
	}
	sort.Strings(rep.Failures)
	if solved > 0 {
		rep.Mean = float64(total) / float64(solved)
	}
	return rep
}
