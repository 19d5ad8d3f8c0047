// Command wordle-sim runs the solver from a terminal.
//
//	wordle-sim -target crane        transcript of one simulated game
//	wordle-sim -all                 simulate every answer
//	wordle-sim -sample 100          simulate 100 random answers
//	wordle-sim -manual              suggest guesses for a game played elsewhere
//	wordle-sim -boards 4            the same for a multi-board game
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fxh90/WordleSolver/internal/config"
	"github.com/fxh90/WordleSolver/internal/solver"
	"github.com/fxh90/WordleSolver/internal/words"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var (
		target   = flag.String("target", "", "simulate a single answer")
		all      = flag.Bool("all", false, "simulate every answer")
		sample   = flag.Int("sample", 0, "simulate N random answers")
		manual   = flag.Bool("manual", false, "interactive solve: enter the pattern you observed")
		boards   = flag.Int("boards", 0, "interactive multi-board solve with N boards")
		strategy = flag.String("strategy", cfg.Strategy, "scoring strategy")
		k        = flag.Float64("k", cfg.ScoreK, "weight of the entropy+probability strategy")
		maxTries = flag.Int("max", 0, "attempt budget (0 selects the mode's default)")
		workers  = flag.Int("workers", cfg.Workers, "goroutines (0 selects GOMAXPROCS)")
		answers  = flag.String("answers", cfg.AnswersFile, "answers word list file (default embedded)")
		allowed  = flag.String("allowed", cfg.AllowedFile, "extra allowed guesses file (default embedded)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	lists, err := words.Load(words.Source{AnswersFile: *answers, AllowedFile: *allowed, Length: cfg.WordLength})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	e, err := solver.NewEngine(lists.Guesses, lists.Answers, solver.WithWorkers(*workers))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build solver engine")
	}
	opts := solver.SessionOptions{Strategy: *strategy, K: *k, MaxAttempts: *maxTries}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *target != "":
		err = runOne(e, opts, *target, os.Stdout)
	case *all:
		err = runBatch(ctx, e, opts, e.Answers(), *workers, os.Stdout)
	case *sample > 0:
		err = runBatch(ctx, e, opts, sampleAnswers(e.Answers(), *sample), *workers, os.Stdout)
	case *manual:
		err = solveManual(e, opts, os.Stdin, os.Stdout)
	case *boards > 0:
		err = solveBoards(e, *boards, opts, os.Stdin, os.Stdout)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
