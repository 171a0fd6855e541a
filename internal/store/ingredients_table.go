package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const ingredientColumns = "ingredient_id, recipe_id, baseitem_id, quantity, units, preparation"

// IngredientsTable accesses the ingredients table. Ingredients are owned by
// their recipe and are deleted with it.
type IngredientsTable struct {
	tx *Tx
}

func hydrateIngredient(row rowScanner) (*types.Ingredient, error) {
	ing := &types.Ingredient{}
	var preparation sql.NullString
	if err := row.Scan(&ing.IngredientID, &ing.RecipeID, &ing.BaseItemID, &ing.Quantity, &ing.Units, &preparation); err != nil {
		return nil, err
	}
	ing.Preparation = preparation.String
	return ing, nil
}

// Get returns the ingredient with the given id and its base item.
func (t *IngredientsTable) Get(id int64) (*types.Ingredient, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	ing, err := hydrateIngredient(t.tx.queryRow(
		"SELECT "+ingredientColumns+" FROM ingredients WHERE ingredient_id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting ingredient %d: %w", id, err)
	}
	if err := t.attachBaseItems([]*types.Ingredient{ing}); err != nil {
		return nil, err
	}
	return ing, nil
}

// Create inserts ing for an existing recipe. An unsaved BaseItem on the
// ingredient is inserted first. The recipe and base item must exist.
func (t *IngredientsTable) Create(ing *types.Ingredient) error {
	if ing == nil {
		return types.ErrInvalidData
	}
	if ing.RecipeID <= 0 {
		return types.ErrInvalidID
	}
	if ing.BaseItem != nil && ing.BaseItem.BaseItemID == 0 {
		if err := t.tx.BaseItems().Create(ing.BaseItem); err != nil {
			return err
		}
	}
	if ing.BaseItem != nil {
		ing.BaseItemID = ing.BaseItem.BaseItemID
	}
	if ing.BaseItemID <= 0 {
		return types.ErrInvalidData
	}

	if ok, err := t.tx.exists("SELECT 1 FROM recipes WHERE recipe_id = ?", ing.RecipeID); err != nil {
		return fmt.Errorf("checking recipe existence: %w", err)
	} else if !ok {
		return fmt.Errorf("recipe %d: %w", ing.RecipeID, types.ErrNotFound)
	}
	if ing.BaseItem == nil {
		item, err := t.tx.BaseItems().Get(ing.BaseItemID)
		if err != nil {
			return fmt.Errorf("base item %d: %w", ing.BaseItemID, err)
		}
		ing.BaseItem = item
	}

	id, err := t.tx.insert(
		"INSERT INTO ingredients (recipe_id, baseitem_id, quantity, units, preparation) VALUES (?, ?, ?, ?, ?) RETURNING ingredient_id",
		ing.RecipeID, ing.BaseItemID, ing.Quantity, ing.Units, nullString(ing.Preparation),
	)
	if err != nil {
		return fmt.Errorf("inserting ingredient: %w", err)
	}
	ing.IngredientID = id
	return nil
}

// Update changes the quantity, units and preparation of an ingredient.
func (t *IngredientsTable) Update(ing *types.Ingredient) error {
	if ing == nil {
		return types.ErrInvalidData
	}
	if ing.IngredientID <= 0 {
		return types.ErrInvalidID
	}
	res, err := t.tx.exec(
		"UPDATE ingredients SET quantity = ?, units = ?, preparation = ? WHERE ingredient_id = ?",
		ing.Quantity, ing.Units, nullString(ing.Preparation), ing.IngredientID,
	)
	if err != nil {
		return fmt.Errorf("updating ingredient %d: %w", ing.IngredientID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a single ingredient from its recipe.
func (t *IngredientsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.deleteByID(types.TableIngredients, "ingredient_id", id)
	if err != nil {
		return fmt.Errorf("deleting ingredient %d: %w", id, err)
	}
	if !ok {
		return types.ErrNotFound
	}
	return nil
}

// ForRecipes returns the ingredients of the given recipes in insertion order,
// with base items loaded.
func (t *IngredientsTable) ForRecipes(recipeIDs ...int64) ([]*types.Ingredient, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(recipeIDs)
	rows, err := t.tx.query(
		"SELECT "+ingredientColumns+" FROM ingredients WHERE recipe_id IN "+in+" ORDER BY ingredient_id", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	ings, err := collect(rows, hydrateIngredient)
	if err != nil {
		return nil, fmt.Errorf("reading ingredients: %w", err)
	}
	if err := t.attachBaseItems(ings); err != nil {
		return nil, err
	}
	return ings, nil
}

// ForBaseItem returns every ingredient that uses the base item.
func (t *IngredientsTable) ForBaseItem(baseItemID int64) ([]*types.Ingredient, error) {
	rows, err := t.tx.query(
		"SELECT "+ingredientColumns+" FROM ingredients WHERE baseitem_id = ? ORDER BY ingredient_id", baseItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	ings, err := collect(rows, hydrateIngredient)
	if err != nil {
		return nil, fmt.Errorf("reading ingredients: %w", err)
	}
	if err := t.attachBaseItems(ings); err != nil {
		return nil, err
	}
	return ings, nil
}

func (t *IngredientsTable) attachBaseItems(ings []*types.Ingredient) error {
	ids := make([]int64, 0, len(ings))
	for _, ing := range ings {
		ids = append(ids, ing.BaseItemID)
	}
	items, err := t.tx.BaseItems().byID(ids)
	if err != nil {
		return err
	}
	for _, ing := range ings {
		ing.BaseItem = items[ing.BaseItemID]
	}
	return nil
}
