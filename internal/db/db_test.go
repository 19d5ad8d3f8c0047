package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMigratedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "solver.db")
	db, err := OpenMigrated(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	require.Equal(t, 2, n)

	for _, table := range []string{"runs", "vectors"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
