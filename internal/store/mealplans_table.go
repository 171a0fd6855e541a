package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const mealplanColumns = "mealplan_id, meal_id, date"

// MealplansTable accesses the mealplans table.
type MealplansTable struct {
	tx *Tx
}

func hydrateMealplan(row rowScanner) (*types.Mealplan, error) {
	p := &types.Mealplan{}
	var date string
	if err := row.Scan(&p.MealplanID, &p.MealID, &date); err != nil {
		return nil, err
	}
	p.Date = parseStoredDate(date)
	return p, nil
}

// Get returns the mealplan with the given id and its meal.
func (t *MealplansTable) Get(id int64) (*types.Mealplan, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	p, err := hydrateMealplan(t.tx.queryRow("SELECT "+mealplanColumns+" FROM mealplans WHERE mealplan_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting mealplan %d: %w", id, err)
	}
	if err := t.attachMeals([]*types.Mealplan{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Create schedules an existing meal on a date.
func (t *MealplansTable) Create(p *types.Mealplan) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if p.Meal != nil && p.MealID == 0 {
		p.MealID = p.Meal.MealID
	}
	if p.MealID <= 0 {
		return types.ErrInvalidID
	}
	if p.Date.IsZero() {
		return types.ErrInvalidDate
	}
	if p.Meal == nil {
		m, err := t.tx.Meals().minimal([]int64{p.MealID})
		if err != nil {
			return err
		}
		if m[p.MealID] == nil {
			return fmt.Errorf("meal %d: %w", p.MealID, types.ErrNotFound)
		}
		p.Meal = m[p.MealID]
	}

	id, err := t.tx.insert(
		"INSERT INTO mealplans (meal_id, date) VALUES (?, ?) RETURNING mealplan_id",
		p.MealID, p.Date.String(),
	)
	if err != nil {
		return fmt.Errorf("inserting mealplan: %w", err)
	}
	p.MealplanID = id
	return nil
}

// Delete removes a mealplan. The meal is kept.
func (t *MealplansTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.deleteByID(types.TableMealplans, "mealplan_id", id)
	if err != nil {
		return fmt.Errorf("deleting mealplan %d: %w", id, err)
	}
	if !ok {
		return types.ErrNotFound
	}
	return nil
}

// Query selects mealplans matching every filter, ordered by date, with the
// planned meal in minimal form.
func (t *MealplansTable) Query(filters ...Filter) *Query[*types.Mealplan] {
	q := newQuery(t.tx, "mealplans", mealplanColumns, "date, mealplan_id", hydrateMealplan, filters)
	q.hydrate = t.attachMeals
	return q
}

func (t *MealplansTable) attachMeals(plans []*types.Mealplan) error {
	ids := make([]int64, len(plans))
	for i, p := range plans {
		ids[i] = p.MealID
	}
	meals, err := t.tx.Meals().minimal(ids)
	if err != nil {
		return err
	}
	for _, p := range plans {
		p.Meal = meals[p.MealID]
	}
	return nil
}
