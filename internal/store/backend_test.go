package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

func TestBackendAttach(t *testing.T) {
	tests := []struct {
		name    string
		config  func(t *testing.T) types.Config
		wantErr error
	}{
		{
			name: "sqlite creates data dir and database",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: types.BackendSQLite, DataDir: filepath.Join(t.TempDir(), "nested", "data")}
			},
		},
		{
			name:    "empty backend rejected",
			config:  func(t *testing.T) types.Config { return types.Config{DataDir: t.TempDir()} },
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend rejected",
			config:  func(t *testing.T) types.Config { return types.Config{Backend: "oracle", DataDir: t.TempDir()} },
			wantErr: types.ErrBackendUnknown,
		},
		{
			name:    "postgres without dsn rejected",
			config:  func(t *testing.T) types.Config { return types.Config{Backend: types.BackendPostgres} },
			wantErr: types.ErrDSNEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(nil)
			cfg := tt.config(t)
			err := b.Attach(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer b.Detach()

			_, statErr := os.Stat(filepath.Join(cfg.DataDir, dbFileName))
			assert.NoError(t, statErr)
			assert.Equal(t, cfg, b.Config())
		})
	}
}

func TestBackendLifecycle(t *testing.T) {
	b := NewBackend(nil)
	ctx := context.Background()

	assert.ErrorIs(t, b.Ping(ctx), types.ErrDetached)
	assert.ErrorIs(t, b.View(ctx, func(*Tx) error { return nil }), types.ErrDetached)

	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, b.Attach(cfg))
	assert.ErrorIs(t, b.Attach(cfg), types.ErrAlreadyAttached)
	assert.NoError(t, b.Ping(ctx))

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")
	assert.ErrorIs(t, b.Update(ctx, func(*Tx) error { return nil }), types.ErrDetached)
}

func TestBackendReattachKeepsData(t *testing.T) {
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	ctx := context.Background()

	b := NewBackend(nil)
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Update(ctx, func(tx *Tx) error {
		return tx.BaseItems().Create(types.NewBaseItem("Garlic"))
	}))
	require.NoError(t, b.Detach())

	b = NewBackend(nil)
	require.NoError(t, b.Attach(cfg))
	defer b.Detach()
	require.NoError(t, b.View(ctx, func(tx *Tx) error {
		n, err := tx.BaseItems().Query().Count()
		assert.Equal(t, 1, n)
		return err
	}))
}

func TestUnitOfWork(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("error rolls back", func(t *testing.T) {
		err := b.Update(ctx, func(tx *Tx) error {
			if err := tx.BaseItems().Create(types.NewBaseItem("Leek")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, countRows(t, b, "baseitems", "name = ?", "Leek"))
	})

	t.Run("panic rolls back and propagates", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = b.Update(ctx, func(tx *Tx) error {
				_ = tx.BaseItems().Create(types.NewBaseItem("Kale"))
				panic("kaboom")
			})
		})
		assert.Equal(t, 0, countRows(t, b, "baseitems", "name = ?", "Kale"))
	})

	t.Run("view never commits", func(t *testing.T) {
		require.NoError(t, b.View(ctx, func(tx *Tx) error {
			return tx.BaseItems().Create(types.NewBaseItem("Chard"))
		}))
		assert.Equal(t, 0, countRows(t, b, "baseitems", "name = ?", "Chard"))
	})

	t.Run("nil commits", func(t *testing.T) {
		require.NoError(t, b.Update(ctx, func(tx *Tx) error {
			return tx.BaseItems().Create(types.NewBaseItem("Fennel"))
		}))
		assert.Equal(t, 1, countRows(t, b, "baseitems", "name = ?", "Fennel"))
	})
}

func TestAttachCreatesStandardTables(t *testing.T) {
	b := newTestBackend(t)
	for _, table := range types.StandardTableNames {
		assert.Equal(t, 0, countRows(t, b, table, ""), table)
	}
}

func TestMigrateDownAndUp(t *testing.T) {
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	version, err := MigrateUp(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, MigrateDown(cfg))

	version, err = MigrateUp(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestRebind(t *testing.T) {
	pg := dialect{name: types.BackendPostgres}
	lite := dialect{name: types.BackendSQLite}
	q := "SELECT 1 FROM recipes WHERE recipe_id = ? AND LOWER(name) LIKE ?"

	assert.Equal(t, "SELECT 1 FROM recipes WHERE recipe_id = $1 AND LOWER(name) LIKE $2", pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
}
