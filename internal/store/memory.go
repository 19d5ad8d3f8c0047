// Package store keeps live solver sessions and puzzles in memory, keyed by ID.
// State is lost on restart; finished simulation runs go to SQLite instead.
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown or expired IDs.
var ErrNotFound = errors.New("not found")

// Store persists values of type T by ID.
type Store[T any] interface {
	Save(ctx context.Context, id string, v T) error
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	Len() int
}

type entry[T any] struct {
	v       T
	touched time.Time
}

// Memory is a map-backed Store. Entries idle longer than ttl are dropped by
// Sweep; a zero ttl keeps them forever.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory constructs an empty in-memory store.
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{items: make(map[string]entry[T]), ttl: ttl, now: time.Now}
}

func (m *Memory[T]) Save(_ context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = entry[T]{v: v, touched: m.now()}
	return nil
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[id]
	if !ok || m.expired(e) {
		var zero T
		return zero, ErrNotFound
	}
	return e.v, nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Sweep removes expired entries and reports how many were dropped.
func (m *Memory[T]) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.items {
		if m.expired(e) {
			delete(m.items, id)
			n++
		}
	}
	return n
}

// Janitor calls Sweep every interval until ctx is done.
func (m *Memory[T]) Janitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

func (m *Memory[T]) expired(e entry[T]) bool {
	return m.ttl > 0 && m.now().Sub(e.touched) > m.ttl
}
