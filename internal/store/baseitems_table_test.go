package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

func TestBaseItemsFindByName(t *testing.T) {
	b := newTestBackend(t)
	update(t, b, func(tx *Tx) error {
		for _, name := range []string{"Garlic", "Garlic Salt", "Onion"} {
			if err := tx.BaseItems().Create(types.NewBaseItem(name)); err != nil {
				return err
			}
		}
		return nil
	})

	tests := []struct {
		term string
		want []string
	}{
		{term: "garlic", want: []string{"Garlic", "Garlic Salt"}},
		{term: "SALT", want: []string{"Garlic Salt"}},
		{term: "n", want: []string{"Onion"}},
		{term: "leek", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			view(t, b, func(tx *Tx) error {
				items, err := tx.BaseItems().FindByName(tt.term)
				require.NoError(t, err)
				var names []string
				for _, it := range items {
					names = append(names, it.Name)
				}
				assert.Equal(t, tt.want, names)
				return nil
			})
		})
	}
}

func TestBaseItemsFindOrCreate(t *testing.T) {
	b := newTestBackend(t)
	update(t, b, func(tx *Tx) error {
		first, err := tx.BaseItems().FindOrCreate("Garlic")
		require.NoError(t, err)

		again, err := tx.BaseItems().FindOrCreate("GARLIC")
		require.NoError(t, err)
		assert.Equal(t, first.BaseItemID, again.BaseItemID)
		assert.Equal(t, "Garlic", again.Name)

		_, err = tx.BaseItems().FindOrCreate(" ")
		assert.ErrorIs(t, err, types.ErrInvalidName)
		return nil
	})
	assert.Equal(t, 1, countRows(t, b, "baseitems", ""))
}

func TestNamesAreStoredAsGiven(t *testing.T) {
	b := newTestBackend(t)

	var recipeID, shopID, itemID int64
	update(t, b, func(tx *Tx) error {
		r := types.NewRecipe(" Kibbeh  ")
		require.NoError(t, tx.Recipes().Create(r))
		recipeID = r.RecipeID

		s := &types.Shop{Name: "Corner shop "}
		require.NoError(t, tx.Shops().Create(s))
		shopID = s.ShopID

		item := types.NewBaseItem(" Garlic")
		require.NoError(t, tx.BaseItems().Create(item))
		itemID = item.BaseItemID
		return nil
	})

	view(t, b, func(tx *Tx) error {
		r, err := tx.Recipes().Get(recipeID)
		require.NoError(t, err)
		assert.Equal(t, " Kibbeh  ", r.Name)

		s, err := tx.Shops().Get(shopID)
		require.NoError(t, err)
		assert.Equal(t, "Corner shop ", s.Name)

		item, err := tx.BaseItems().Get(itemID)
		require.NoError(t, err)
		assert.Equal(t, " Garlic", item.Name)
		return nil
	})
}

func TestBaseItemsUpdate(t *testing.T) {
	b := newTestBackend(t)
	update(t, b, func(tx *Tx) error {
		item := types.NewBaseItem("Corriander")
		require.NoError(t, tx.BaseItems().Create(item))

		item.Name = "Coriander"
		require.NoError(t, tx.BaseItems().Update(item))
		got, err := tx.BaseItems().Get(item.BaseItemID)
		require.NoError(t, err)
		assert.Equal(t, "Coriander", got.Name)

		assert.ErrorIs(t, tx.BaseItems().Update(&types.BaseItem{BaseItemID: 99, Name: "x"}), types.ErrNotFound)
		assert.ErrorIs(t, tx.BaseItems().Update(&types.BaseItem{BaseItemID: item.BaseItemID}), types.ErrInvalidName)
		return nil
	})
}

func TestBaseItemsDelete(t *testing.T) {
	b := newTestBackend(t)

	var used, listed, stocked int64
	update(t, b, func(tx *Tx) error {
		r := types.NewRecipe("Salad")
		usedItem := types.NewBaseItem("Lettuce")
		r.AddIngredient(usedItem, 1, "head", "")
		if err := tx.Recipes().Create(r); err != nil {
			return err
		}

		list := &types.ShoppingList{}
		listedItem := types.NewBaseItem("Milk")
		list.AddItem(listedItem, 2)
		if err := tx.ShoppingLists().Create(list); err != nil {
			return err
		}

		shop := &types.Shop{Name: "Corner"}
		shop.CreateAisle("Snacks").AddItem(types.NewBaseItem("Crisps"))
		if err := tx.Shops().Create(shop); err != nil {
			return err
		}
		used, listed = usedItem.BaseItemID, listedItem.BaseItemID
		stocked = shop.Aisles[0].BaseItems[0].BaseItemID
		return nil
	})

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "used by an ingredient", id: used, wantErr: types.ErrReferenced},
		{name: "on a shopping list", id: listed, wantErr: types.ErrReferenced},
		{name: "only stocked in an aisle", id: stocked},
		{name: "missing", id: 1000, wantErr: types.ErrNotFound},
		{name: "invalid id", id: 0, wantErr: types.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Update(context.Background(), func(tx *Tx) error { return tx.BaseItems().Delete(tt.id) })
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, countRows(t, b, "aisles_items", "baseitem_id = ?", tt.id))
			assert.Equal(t, 0, countRows(t, b, "baseitems", "baseitem_id = ?", tt.id))
		})
	}
}
