package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const mealColumns = "meal_id, description"

// MealsTable accesses the meals table and the meals_recipes join table.
type MealsTable struct {
	tx *Tx
}

func hydrateMeal(row rowScanner) (*types.Meal, error) {
	m := &types.Meal{}
	if err := row.Scan(&m.MealID, &m.Description); err != nil {
		return nil, err
	}
	m.Recipes = []*types.Recipe{}
	return m, nil
}

func hydrateMealRecipe(row rowScanner) (types.MealRecipe, error) {
	var mr types.MealRecipe
	err := row.Scan(&mr.MealID, &mr.RecipeID)
	return mr, err
}

// Get returns the meal with the given id and its recipes. Recipes are loaded
// without ingredients.
func (t *MealsTable) Get(id int64) (*types.Meal, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	m, err := hydrateMeal(t.tx.queryRow("SELECT "+mealColumns+" FROM meals WHERE meal_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting meal %d: %w", id, err)
	}
	if err := t.attachRecipes([]*types.Meal{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts the meal and links the recipes already added to it. Linked
// recipes must exist.
func (t *MealsTable) Create(m *types.Meal) error {
	if m == nil {
		return types.ErrInvalidData
	}
	id, err := t.tx.insert("INSERT INTO meals (description) VALUES (?) RETURNING meal_id", m.Description)
	if err != nil {
		return fmt.Errorf("inserting meal: %w", err)
	}
	m.MealID = id
	for _, r := range m.Recipes {
		if err := t.AddRecipe(id, r.RecipeID); err != nil {
			return err
		}
	}
	if m.Recipes == nil {
		m.Recipes = []*types.Recipe{}
	}
	return nil
}

// Update saves the description of an existing meal.
func (t *MealsTable) Update(m *types.Meal) error {
	if m == nil {
		return types.ErrInvalidData
	}
	if m.MealID <= 0 {
		return types.ErrInvalidID
	}
	res, err := t.tx.exec("UPDATE meals SET description = ? WHERE meal_id = ?", m.Description, m.MealID)
	if err != nil {
		return fmt.Errorf("updating meal %d: %w", m.MealID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a meal, its mealplans and its recipe links. The recipes
// themselves are kept.
func (t *MealsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.exists("SELECT 1 FROM meals WHERE meal_id = ?", id)
	if err != nil {
		return fmt.Errorf("checking meal existence: %w", err)
	}
	if !ok {
		return types.ErrNotFound
	}

	if _, err := t.tx.exec("DELETE FROM mealplans WHERE meal_id = ?", id); err != nil {
		return fmt.Errorf("deleting meal plans: %w", err)
	}
	if _, err := t.tx.exec("DELETE FROM meals_recipes WHERE meal_id = ?", id); err != nil {
		return fmt.Errorf("deleting meal recipe links: %w", err)
	}
	if _, err := t.tx.deleteByID(types.TableMeals, "meal_id", id); err != nil {
		return fmt.Errorf("deleting meal: %w", err)
	}
	return nil
}

// Query selects meals matching every filter, ordered by id, with recipes.
func (t *MealsTable) Query(filters ...Filter) *Query[*types.Meal] {
	q := newQuery(t.tx, "meals", mealColumns, "meal_id", hydrateMeal, filters)
	q.hydrate = t.attachRecipes
	return q
}

// AddRecipe links a recipe to a meal. Linking twice is a no-op.
func (t *MealsTable) AddRecipe(mealID, recipeID int64) error {
	if mealID <= 0 || recipeID <= 0 {
		return types.ErrInvalidID
	}
	if ok, err := t.tx.exists("SELECT 1 FROM meals WHERE meal_id = ?", mealID); err != nil {
		return fmt.Errorf("checking meal existence: %w", err)
	} else if !ok {
		return fmt.Errorf("meal %d: %w", mealID, types.ErrNotFound)
	}
	if ok, err := t.tx.exists("SELECT 1 FROM recipes WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("checking recipe existence: %w", err)
	} else if !ok {
		return fmt.Errorf("recipe %d: %w", recipeID, types.ErrNotFound)
	}
	_, err := t.tx.exec(
		"INSERT INTO meals_recipes (meal_id, recipe_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		mealID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("linking recipe %d to meal %d: %w", recipeID, mealID, err)
	}
	return nil
}

// RemoveRecipe unlinks a recipe. Returns ErrNotFound when it was not linked.
func (t *MealsTable) RemoveRecipe(mealID, recipeID int64) error {
	res, err := t.tx.exec("DELETE FROM meals_recipes WHERE meal_id = ? AND recipe_id = ?", mealID, recipeID)
	if err != nil {
		return fmt.Errorf("unlinking recipe %d from meal %d: %w", recipeID, mealID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Links returns the join rows of a meal.
func (t *MealsTable) Links(mealID int64) ([]types.MealRecipe, error) {
	rows, err := t.tx.query(
		"SELECT meal_id, recipe_id FROM meals_recipes WHERE meal_id = ? ORDER BY recipe_id", mealID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying meal recipes: %w", err)
	}
	return collect(rows, hydrateMealRecipe)
}

// minimal loads meals without recipes, keyed by id.
func (t *MealsTable) minimal(ids []int64) (map[int64]*types.Meal, error) {
	out := make(map[int64]*types.Meal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	in, args := inClause(ids)
	rows, err := t.tx.query("SELECT "+mealColumns+" FROM meals WHERE meal_id IN "+in, args...)
	if err != nil {
		return nil, fmt.Errorf("loading meals: %w", err)
	}
	meals, err := collect(rows, hydrateMeal)
	if err != nil {
		return nil, fmt.Errorf("loading meals: %w", err)
	}
	for _, m := range meals {
		out[m.MealID] = m
	}
	return out, nil
}

func (t *MealsTable) attachRecipes(meals []*types.Meal) error {
	ids := make([]int64, len(meals))
	byID := make(map[int64]*types.Meal, len(meals))
	for i, m := range meals {
		ids[i] = m.MealID
		byID[m.MealID] = m
		m.Recipes = []*types.Recipe{}
	}
	in, args := inClause(ids)
	rows, err := t.tx.query(
		"SELECT meal_id, recipe_id FROM meals_recipes WHERE meal_id IN "+in+" ORDER BY recipe_id", args...,
	)
	if err != nil {
		return fmt.Errorf("querying meal recipes: %w", err)
	}
	links, err := collect(rows, hydrateMealRecipe)
	if err != nil {
		return fmt.Errorf("reading meal recipes: %w", err)
	}

	recipeIDs := make([]int64, len(links))
	for i, l := range links {
		recipeIDs[i] = l.RecipeID
	}
	recipes, err := t.tx.Recipes().minimal(recipeIDs)
	if err != nil {
		return err
	}
	for _, l := range links {
		if m, r := byID[l.MealID], recipes[l.RecipeID]; m != nil && r != nil {
			m.Recipes = append(m.Recipes, r)
		}
	}
	return nil
}
