package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const recipeColumns = "recipe_id, name, instructions, preparation_time, cooking_time, serves, added_on"

// RecipesTable accesses the recipes table and the ingredients it owns.
type RecipesTable struct {
	tx *Tx
}

func hydrateRecipe(row rowScanner) (*types.Recipe, error) {
	r := &types.Recipe{}
	var addedOn string
	if err := row.Scan(&r.RecipeID, &r.Name, &r.Instructions, &r.PreparationTime, &r.CookingTime, &r.Serves, &addedOn); err != nil {
		return nil, err
	}
	r.AddedOn = parseTime(addedOn)
	r.Ingredients = []*types.Ingredient{}
	return r, nil
}

// Get returns the recipe with the given id and all of its ingredients.
func (t *RecipesTable) Get(id int64) (*types.Recipe, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	r, err := hydrateRecipe(t.tx.queryRow(
		"SELECT "+recipeColumns+" FROM recipes WHERE recipe_id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting recipe %d: %w", id, err)
	}
	if err := t.attachIngredients([]*types.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts r together with its ingredients. Unsaved base items
// referenced by the ingredients are inserted too. AddedOn defaults to now.
func (t *RecipesTable) Create(r *types.Recipe) error {
	if r == nil {
		return types.ErrInvalidData
	}
	if !validName(r.Name) {
		return types.ErrInvalidName
	}
	if r.AddedOn.IsZero() {
		r.AddedOn = time.Now().UTC().Truncate(time.Second)
	}

	id, err := t.tx.insert(
		"INSERT INTO recipes (name, instructions, preparation_time, cooking_time, serves, added_on) VALUES (?, ?, ?, ?, ?, ?) RETURNING recipe_id",
		r.Name, r.Instructions, r.PreparationTime, r.CookingTime, r.Serves, formatTime(r.AddedOn),
	)
	if err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}
	r.RecipeID = id

	ingredients := t.tx.Ingredients()
	for _, ing := range r.Ingredients {
		ing.RecipeID = id
		if err := ingredients.Create(ing); err != nil {
			return fmt.Errorf("adding ingredient to recipe %d: %w", id, err)
		}
	}
	if r.Ingredients == nil {
		r.Ingredients = []*types.Ingredient{}
	}
	return nil
}

// Update saves the scalar fields of an existing recipe. Ingredients are
// changed through the ingredients table.
func (t *RecipesTable) Update(r *types.Recipe) error {
	if r == nil {
		return types.ErrInvalidData
	}
	if r.RecipeID <= 0 {
		return types.ErrInvalidID
	}
	if !validName(r.Name) {
		return types.ErrInvalidName
	}
	res, err := t.tx.exec(
		"UPDATE recipes SET name = ?, instructions = ?, preparation_time = ?, cooking_time = ?, serves = ? WHERE recipe_id = ?",
		r.Name, r.Instructions, r.PreparationTime, r.CookingTime, r.Serves, r.RecipeID,
	)
	if err != nil {
		return fmt.Errorf("updating recipe %d: %w", r.RecipeID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a recipe, its ingredients and its meal links.
func (t *RecipesTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.exists("SELECT 1 FROM recipes WHERE recipe_id = ?", id)
	if err != nil {
		return fmt.Errorf("checking recipe existence: %w", err)
	}
	if !ok {
		return types.ErrNotFound
	}

	if _, err := t.tx.exec("DELETE FROM meals_recipes WHERE recipe_id = ?", id); err != nil {
		return fmt.Errorf("deleting recipe meal links: %w", err)
	}
	if _, err := t.tx.exec("DELETE FROM ingredients WHERE recipe_id = ?", id); err != nil {
		return fmt.Errorf("deleting recipe ingredients: %w", err)
	}
	if _, err := t.tx.deleteByID(types.TableRecipes, "recipe_id", id); err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	return nil
}

// Query selects recipes matching every filter, ordered by id. Each recipe
// is returned with its ingredients.
func (t *RecipesTable) Query(filters ...Filter) *Query[*types.Recipe] {
	q := newQuery(t.tx, "recipes", recipeColumns, "recipe_id", hydrateRecipe, filters)
	q.hydrate = t.attachIngredients
	return q
}

// BaseItems returns the distinct base items used by the recipe.
func (t *RecipesTable) BaseItems(id int64) ([]*types.BaseItem, error) {
	r, err := t.Get(id)
	if err != nil {
		return nil, err
	}
	return r.BaseItems(), nil
}

// Meals returns the meals that include the recipe.
func (t *RecipesTable) Meals(id int64) ([]*types.Meal, error) {
	rows, err := t.tx.query(
		"SELECT "+mealColumns+" FROM meals WHERE meal_id IN (SELECT meal_id FROM meals_recipes WHERE recipe_id = ?) ORDER BY meal_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying meals for recipe %d: %w", id, err)
	}
	return collect(rows, hydrateMeal)
}

// minimal loads recipes without ingredients, keyed by id.
func (t *RecipesTable) minimal(ids []int64) (map[int64]*types.Recipe, error) {
	out := make(map[int64]*types.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	in, args := inClause(ids)
	rows, err := t.tx.query("SELECT "+recipeColumns+" FROM recipes WHERE recipe_id IN "+in, args...)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	recipes, err := collect(rows, hydrateRecipe)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	for _, r := range recipes {
		out[r.RecipeID] = r
	}
	return out, nil
}

func (t *RecipesTable) attachIngredients(recipes []*types.Recipe) error {
	ids := make([]int64, len(recipes))
	byID := make(map[int64]*types.Recipe, len(recipes))
	for i, r := range recipes {
		ids[i] = r.RecipeID
		byID[r.RecipeID] = r
		r.Ingredients = []*types.Ingredient{}
	}
	ings, err := t.tx.Ingredients().ForRecipes(ids...)
	if err != nil {
		return err
	}
	for _, ing := range ings {
		if r := byID[ing.RecipeID]; r != nil {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	return nil
}
