// Package runs persists simulated solver runs and aggregates them per
// strategy.
package runs

import (
	"context"
	"database/sql"
	"strings"
)

// Run is one persisted simulation.
type Run struct {
	ID        int64    `json:"id"`
	Answer    string   `json:"answer"`
	Strategy  string   `json:"strategy"`
	Attempts  int      `json:"attempts"`
	Solved    bool     `json:"solved"`
	Guesses   []string `json:"guesses"`
	ElapsedMs int      `json:"elapsedMs"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// Summary aggregates runs of one strategy.
type Summary struct {
	Strategy     string  `json:"strategy"`
	Runs         int     `json:"runs"`
	Solved       int     `json:"solved"`
	MeanAttempts float64 `json:"meanAttempts"` // over solved runs
	Worst        int     `json:"worst"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores r and returns its row id.
func (s *Store) Insert(ctx context.Context, r Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(answer, strategy, attempts, solved, guesses, elapsed_ms)
		VALUES(?,?,?,?,?,?)`,
		r.Answer, r.Strategy, r.Attempts, r.Solved, strings.Join(r.Guesses, ","), r.ElapsedMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns the latest runs, newest first. limit <= 0 selects 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, answer, strategy, attempts, solved, guesses, elapsed_ms, created_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var guesses string
		if err := rows.Scan(&r.ID, &r.Answer, &r.Strategy, &r.Attempts, &r.Solved, &guesses, &r.ElapsedMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		if guesses != "" {
			r.Guesses = strings.Split(guesses, ",")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summaries aggregates all runs per strategy, ordered by strategy name.
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strategy,
		        COUNT(1),
		        COALESCE(SUM(solved), 0),
		        COALESCE(AVG(CASE WHEN solved THEN attempts END), 0),
		        COALESCE(MAX(CASE WHEN solved THEN attempts END), 0)
		FROM runs
		GROUP BY strategy
		ORDER BY strategy ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.Strategy, &sm.Runs, &sm.Solved, &sm.MeanAttempts, &sm.Worst); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
