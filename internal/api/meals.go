package api

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

type mealRequest struct {
	Description string  `json:"description"`
	RecipeIDs   []int64 `json:"recipe_ids"`
}

type mealRecipeRequest struct {
	RecipeID int64 `json:"recipe_id"`
}

type mealplanRequest struct {
	MealID int64      `json:"meal_id"`
	Date   types.Date `json:"date"`
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) {
	servePage(s, w, r, mealStages, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.Meal], error) {
		return tx.Meals().Query(filters...), nil
	})
}

func (s *Server) getMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var meal *types.Meal
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		meal, err = tx.Meals().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meal.ToDict())
}

func (s *Server) createMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var meal *types.Meal
	err := s.store.Update(r.Context(), func(tx *store.Tx) error {
		m := &types.Meal{Description: req.Description}
		if err := tx.Meals().Create(m); err != nil {
			return err
		}
		for _, rid := range req.RecipeIDs {
			if err := tx.Meals().AddRecipe(m.MealID, rid); err != nil {
				return bodyRef(err)
			}
		}
		var err error
		meal, err = tx.Meals().Get(m.MealID)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal.ToDict())
}

func (s *Server) deleteMeal(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(tx *store.Tx, id int64) error {
		return tx.Meals().Delete(id)
	})
}

func (s *Server) addMealRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req mealRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.RecipeID <= 0 {
		s.writeError(w, r, fmt.Errorf("%w: recipe_id is required", types.ErrInvalidData))
		return
	}

	var meal *types.Meal
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		if _, err := tx.Meals().Get(id); err != nil {
			return err
		}
		if err := tx.Meals().AddRecipe(id, req.RecipeID); err != nil {
			return bodyRef(err)
		}
		meal, err = tx.Meals().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal.ToDict())
}

func (s *Server) listMealplans(w http.ResponseWriter, r *http.Request) {
	servePage(s, w, r, mealplanStages, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.Mealplan], error) {
		return tx.Mealplans().Query(filters...), nil
	})
}

func (s *Server) createMealplan(w http.ResponseWriter, r *http.Request) {
	var req mealplanRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.MealID <= 0 {
		s.writeError(w, r, fmt.Errorf("%w: meal_id is required", types.ErrInvalidData))
		return
	}
	if req.Date.IsZero() {
		s.writeError(w, r, fmt.Errorf("%w: date is required", types.ErrInvalidDate))
		return
	}

	plan := &types.Mealplan{MealID: req.MealID, Date: req.Date}
	err := s.store.Update(r.Context(), func(tx *store.Tx) error {
		return bodyRef(tx.Mealplans().Create(plan))
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan.ToDict())
}
