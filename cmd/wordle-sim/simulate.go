package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/fxh90/WordleSolver/internal/simulate"
	"github.com/fxh90/WordleSolver/internal/solver"
)

func runOne(e *solver.Engine, opts solver.SessionOptions, target string, out io.Writer) error {
	res, err := simulate.Run(e, opts, strings.ToLower(strings.TrimSpace(target)))
	if err != nil {
		return err
	}
	for i, t := range res.Turns {
		fmt.Fprintf(out, "%d. %s %s\n", i+1, t.Guess, t.Pattern)
	}
	if res.Solved {
		fmt.Fprintf(out, "solved %s in %d (%s)\n", res.Answer, res.Attempts, res.Elapsed)
	} else {
		fmt.Fprintf(out, "failed %s after %d\n", res.Answer, res.Attempts)
	}
	return nil
}

func sampleAnswers(answers []string, n int) []string {
	if n >= len(answers) {
		return answers
	}
	out := make([]string, n)
	for i, j := range rand.Perm(len(answers))[:n] {
		out[i] = answers[j]
	}
	return out
}

func runBatch(ctx context.Context, e *solver.Engine, opts solver.SessionOptions, answers []string, workers int, out io.Writer) error {
	bar := progressbar.Default(int64(len(answers)), "simulating")
	rep, err := simulate.Batch(ctx, e, opts, answers, workers, func(simulate.Result) { _ = bar.Add(1) })
	_ = bar.Finish()
	if err != nil {
		return err
	}
	printReport(out, rep)
	return nil
}

func printReport(out io.Writer, rep simulate.Report) {
	attempts := make([]int, 0, len(rep.Histogram))
	for a := range rep.Histogram {
		attempts = append(attempts, a)
	}
	sort.Ints(attempts)
	for _, a := range attempts {
		fmt.Fprintf(out, "%2d: %d\n", a, rep.Histogram[a])
	}
	fmt.Fprintf(out, "games %d  mean %.3f  worst %d  failed %d\n",
		len(rep.Results), rep.Mean, rep.Worst, len(rep.Failures))
	if len(rep.Failures) > 0 {
		fmt.Fprintf(out, "failures: %s\n", strings.Join(rep.Failures, " "))
	}
}
