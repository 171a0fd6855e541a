package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// TestPostgresBackend runs a recipe round trip against a real Postgres.
// Set TEST_DATABASE_URL to a disposable database to enable it.
func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cfg := types.Config{Backend: types.BackendPostgres, DatabaseURL: dsn}
	require.NoError(t, MigrateDown(cfg))

	b := NewBackend(zaptest.NewLogger(t))
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() {
		b.Detach()
		MigrateDown(cfg)
	})

	var id int64
	update(t, b, func(tx *Tx) error {
		r, _, err := Seed(tx)
		if err != nil {
			return err
		}
		id = r.RecipeID
		return nil
	})

	view(t, b, func(tx *Tx) error {
		items, err := tx.BaseItems().FindByName("garlic")
		require.NoError(t, err)
		require.Len(t, items, 1)

		r, err := tx.Recipes().Get(id)
		require.NoError(t, err)
		assert.Len(t, r.Ingredients, len(sampleIngredients))
		return nil
	})

	update(t, b, func(tx *Tx) error { return tx.Recipes().Delete(id) })
	assert.Equal(t, 0, countRows(t, b, "ingredients", "recipe_id = ?", id))
}
