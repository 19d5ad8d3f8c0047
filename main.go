package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fxh90/WordleSolver/internal/config"
	"github.com/fxh90/WordleSolver/internal/db"
	"github.com/fxh90/WordleSolver/internal/httpserver"
	"github.com/fxh90/WordleSolver/internal/metrics"
	"github.com/fxh90/WordleSolver/internal/runs"
	"github.com/fxh90/WordleSolver/internal/solver"
	"github.com/fxh90/WordleSolver/internal/vectorcache"
	"github.com/fxh90/WordleSolver/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	lists, err := words.Load(words.Source{
		AnswersFile: cfg.AnswersFile,
		AllowedFile: cfg.AllowedFile,
		Length:      cfg.WordLength,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	conn, err := db.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer conn.Close()

	mem, err := vectorcache.NewMemory(cfg.CacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create vector cache")
	}
	// Only the opening vector is worth keeping across restarts.
	var opening string
	cache := vectorcache.NewTiered(mem, vectorcache.NewSQLite(conn), func(key string) bool { return key == opening })

	m := metrics.New()
	start := time.Now()
	engine, err := solver.NewEngine(lists.Guesses, lists.Answers,
		solver.WithWorkers(cfg.Workers),
		solver.WithCache(cache),
		solver.WithObserver(m),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build solver engine")
	}
	opening = engine.OpeningKey()
	if _, err := engine.Entropies(engine.FullSet()); err != nil {
		log.Fatal().Err(err).Msg("failed to compute opening entropies")
	}
	a, g := lists.Stats()
	log.Info().
		Int("answers", a).
		Int("guesses", g).
		Dur("warmup", time.Since(start)).
		Msg("solver engine ready")

	srv := httpserver.New(httpserver.Deps{
		Config:  cfg,
		Engine:  engine,
		Words:   lists,
		Runs:    runs.NewStore(conn),
		Metrics: m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Janitor(ctx, 10*time.Minute)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting solver server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()
	<-ctx.Done()
	log.Info().Msg("shutting down")
}
