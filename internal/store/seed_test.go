package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	b := newTestBackend(t)

	var id int64
	update(t, b, func(tx *Tx) error {
		r, created, err := Seed(tx)
		require.NoError(t, err)
		assert.True(t, created)
		id = r.RecipeID
		return nil
	})

	update(t, b, func(tx *Tx) error {
		r, created, err := Seed(tx)
		require.NoError(t, err)
		assert.False(t, created, "second run finds the existing recipe")
		assert.Equal(t, id, r.RecipeID)
		return nil
	})

	assert.Equal(t, 1, countRows(t, b, "recipes", ""))
	assert.Equal(t, len(sampleIngredients), countRows(t, b, "ingredients", ""))
	assert.Equal(t, len(sampleIngredients), countRows(t, b, "baseitems", ""))

	view(t, b, func(tx *Tx) error {
		r, err := tx.Recipes().Get(id)
		require.NoError(t, err)
		first := r.Ingredients[0].ToDict()
		assert.Equal(t, "Bulgar Wheat", first["name"])
		assert.Equal(t, 125.0, first["quantity"])
		assert.Equal(t, "g", first["units"])
		assert.Nil(t, first["preparation"])
		return nil
	})
}
