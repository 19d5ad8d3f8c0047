// Package vectorcache stores precomputed entropy vectors: an in-memory LRU
// in front of an optional SQLite table so the opening vectors survive
// restarts.
package vectorcache

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// DefaultSize is the LRU capacity in vectors.
const DefaultSize = 256

// Stats are cache counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Memory is a bounded LRU of vectors. Safe for concurrent use.
type Memory struct {
	cache  *lru.Cache[string, []float64]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemory creates an LRU holding up to size vectors.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, []float64](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &Memory{cache: c}, nil
}

func (m *Memory) Get(key string) ([]float64, bool) {
	v, ok := m.cache.Get(key)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return v, ok
}

func (m *Memory) Put(key string, v []float64) { m.cache.Add(key, v) }

// Stats returns hit/miss counters and the current size.
func (m *Memory) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load(), Size: m.cache.Len()}
}

// SQLite persists vectors in the vectors table.
type SQLite struct{ db *sql.DB }

func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Load returns the vector stored under key.
func (s *SQLite) Load(ctx context.Context, key string) ([]float64, error) {
	var n int
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT length, data FROM vectors WHERE key=?`, key).Scan(&n, &data)
	if err != nil {
		return nil, err
	}
	return decode(data, n)
}

// Store writes v under key, replacing any previous vector.
func (s *SQLite) Store(ctx context.Context, key string, v []float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO vectors(key, length, data) VALUES(?,?,?)`,
		key, len(v), encode(v),
	)
	return err
}

func (s *SQLite) Get(key string) ([]float64, bool) {
	v, err := s.Load(context.Background(), key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Str("key", key).Msg("load vector")
		}
		return nil, false
	}
	return v, true
}

func (s *SQLite) Put(key string, v []float64) {
	if err := s.Store(context.Background(), key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("store vector")
	}
}

func encode(v []float64) []byte {
	b := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(x))
	}
	return b
}

func decode(b []byte, n int) ([]float64, error) {
	if len(b) != 8*n {
		return nil, fmt.Errorf("vectorcache: corrupt vector: %d bytes for %d values", len(b), n)
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return v, nil
}

// Tiered reads through the LRU to SQLite. Only keys accepted by persist
// are written to SQLite; a nil persist writes every key.
type Tiered struct {
	front   *Memory
	back    *SQLite
	persist func(key string) bool
}

func NewTiered(front *Memory, back *SQLite, persist func(key string) bool) *Tiered {
	return &Tiered{front: front, back: back, persist: persist}
}

func (t *Tiered) Get(key string) ([]float64, bool) {
	if v, ok := t.front.Get(key); ok {
		return v, true
	}
	if t.back == nil {
		return nil, false
	}
	v, ok := t.back.Get(key)
	if ok {
		t.front.Put(key, v)
	}
	return v, ok
}

func (t *Tiered) Put(key string, v []float64) {
	t.front.Put(key, v)
	if t.back != nil && (t.persist == nil || t.persist(key)) {
		t.back.Put(key, v)
	}
}

// Stats reports the in-memory tier.
func (t *Tiered) Stats() Stats { return t.front.Stats() }
