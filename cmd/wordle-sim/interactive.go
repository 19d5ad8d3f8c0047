package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/multiboard"
	"github.com/fxh90/WordleSolver/internal/solver"
)

const suggestions = 5

// solveManual suggests guesses and reads back "pattern" or "word pattern"
// lines, where the word overrides the suggestion.
func solveManual(e *solver.Engine, opts solver.SessionOptions, in io.Reader, out io.Writer) error {
	s, err := e.NewSession(opts)
	if err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	for !s.Done() {
		guess, err := s.NextGuess()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d remaining, try %s\n", s.RemainingCount(), guess)
		if s.RemainingCount() > 1 {
			cands, err := s.Candidates(suggestions)
			if err != nil {
				return err
			}
			for _, c := range cands {
				fmt.Fprintf(out, "  %s  %.3f bits  p=%.3f\n", c.Word, c.Entropy, c.Probability)
			}
		}

		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 {
			if err := s.Play(strings.ToLower(fields[0])); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fields = fields[1:]
		}
		if len(fields) != 1 {
			fmt.Fprintln(out, "enter a pattern such as 02101, optionally after the word played")
			continue
		}
		code, err := parseCode(fields[0], e.Length())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if _, err := s.ReportFeedback(code); err != nil {
			if errors.Is(err, solver.ErrEmptyAnswerSet) {
				fmt.Fprintln(out, "no answer matches that feedback, check it and try again")
				continue
			}
			return err
		}
	}

	if s.State() == solver.Solved {
		fmt.Fprintf(out, "solved in %d\n", s.Attempts())
	} else {
		fmt.Fprintf(out, "out of attempts, %d answers left\n", s.RemainingCount())
	}
	return nil
}

// solveBoards is solveManual for n boards sharing each guess. Lines hold one
// pattern per board, optionally after the word played.
func solveBoards(e *solver.Engine, n int, opts solver.SessionOptions, in io.Reader, out io.Writer) error {
	p, err := multiboard.New(e, n, opts)
	if err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	for p.State() == solver.Continuing {
		guess, err := p.NextGuess()
		if err != nil {
			return err
		}
		left := make([]string, len(p.Boards()))
		for i, b := range p.Boards() {
			left[i] = fmt.Sprint(b.RemainingCount())
			if b.Done() {
				left[i] = "done"
			}
		}
		fmt.Fprintf(out, "boards [%s], try %s\n", strings.Join(left, " "), guess)

		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == n+1 {
			if err := p.Play(strings.ToLower(fields[0])); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fields = fields[1:]
		}
		if len(fields) != n {
			fmt.Fprintf(out, "enter %d patterns, optionally after the word played\n", n)
			continue
		}
		codes := make([]feedback.Code, n)
		for i, f := range fields {
			if codes[i], err = parseCode(f, e.Length()); err != nil {
				break
			}
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if _, err := p.ReportFeedback(codes); err != nil {
			if errors.Is(err, solver.ErrEmptyAnswerSet) {
				fmt.Fprintln(out, err)
				continue
			}
			return err
		}
	}

	if p.State() == solver.Solved {
		fmt.Fprintf(out, "solved all boards in %d\n", p.Attempts())
	} else {
		fmt.Fprintf(out, "out of attempts after %d\n", p.Attempts())
	}
	return nil
}

func parseCode(pattern string, length int) (feedback.Code, error) {
	if len(pattern) != length {
		return 0, fmt.Errorf("%w: want %d digits", feedback.ErrInvalidCode, length)
	}
	return feedback.ParsePattern(pattern)
}
