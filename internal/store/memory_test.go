package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemorySaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[string](0)

	_, err := m.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "a", "one"))
	v, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "one", v)
	require.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "a"))
	_, err = m.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory[int](time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "old", 1))
	now = now.Add(50 * time.Second)
	require.NoError(t, m.Save(ctx, "new", 2))
	now = now.Add(20 * time.Second)

	_, err := m.Get(ctx, "old")
	require.ErrorIs(t, err, ErrNotFound)
	v, err := m.Get(ctx, "new")
	require.NoError(t, err)
	require.Equal(t, 2, v)

	require.Equal(t, 1, m.Sweep())
	require.Equal(t, 1, m.Len())
}
