package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// newTestBackend attaches a SQLite backend in a temporary directory.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(zaptest.NewLogger(t))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// update runs fn in a read-write unit of work and fails the test on error.
func update(t *testing.T, b *Backend, fn func(tx *Tx) error) {
	t.Helper()
	require.NoError(t, b.Update(context.Background(), fn))
}

// view runs fn in a read-only unit of work and fails the test on error.
func view(t *testing.T, b *Backend, fn func(tx *Tx) error) {
	t.Helper()
	require.NoError(t, b.View(context.Background(), fn))
}

// countRows returns the number of rows in table matching the optional where clause.
func countRows(t *testing.T, b *Backend, table, cond string, args ...any) int {
	t.Helper()
	var n int
	view(t, b, func(tx *Tx) error {
		q := "SELECT COUNT(*) FROM " + table
		if cond != "" {
			q += " WHERE " + cond
		}
		return tx.queryRow(q, args...).Scan(&n)
	})
	return n
}
