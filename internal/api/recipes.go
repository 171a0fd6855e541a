package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

type ingredientRequest struct {
	BaseItemID  int64   `json:"baseitem_id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Units       string  `json:"units"`
	Preparation *string `json:"preparation"`
}

type recipeRequest struct {
	Name            string              `json:"name"`
	Instructions    string              `json:"instructions"`
	PreparationTime int                 `json:"preparation_time"`
	CookingTime     int                 `json:"cooking_time"`
	Serves          int                 `json:"serves"`
	Ingredients     []ingredientRequest `json:"ingredients"`
}

// resolve finds the base item an ingredient refers to, by id or by name.
// Unknown names create a new base item.
func (ir ingredientRequest) resolve(tx *store.Tx) (*types.BaseItem, error) {
	if ir.BaseItemID > 0 {
		item, err := tx.BaseItems().Get(ir.BaseItemID)
		if err != nil {
			return nil, bodyRef(fmt.Errorf("base item %d: %w", ir.BaseItemID, err))
		}
		return item, nil
	}
	if strings.TrimSpace(ir.Name) == "" {
		return nil, fmt.Errorf("%w: ingredient needs a baseitem_id or a name", types.ErrInvalidData)
	}
	return tx.BaseItems().FindOrCreate(ir.Name)
}

func (ir ingredientRequest) preparation() string {
	if ir.Preparation == nil {
		return ""
	}
	return *ir.Preparation
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	servePage(s, w, r, recipeStages, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.Recipe], error) {
		return tx.Recipes().Query(filters...), nil
	})
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var recipe *types.Recipe
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		recipe, err = tx.Recipes().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe.ToDict())
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, r, fmt.Errorf("%w: name is required", types.ErrInvalidName))
		return
	}

	recipe := types.NewRecipe(req.Name)
	recipe.Instructions = req.Instructions
	recipe.PreparationTime = req.PreparationTime
	recipe.CookingTime = req.CookingTime
	recipe.Serves = req.Serves

	err := s.store.Update(r.Context(), func(tx *store.Tx) error {
		for _, ir := range req.Ingredients {
			item, err := ir.resolve(tx)
			if err != nil {
				return err
			}
			recipe.AddIngredient(item, ir.Quantity, ir.Units, ir.preparation())
		}
		return tx.Recipes().Create(recipe)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipe.ToDict())
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(tx *store.Tx, id int64) error {
		return tx.Recipes().Delete(id)
	})
}

func (s *Server) addIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req ingredientRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var recipe *types.Recipe
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		if recipe, err = tx.Recipes().Get(id); err != nil {
			return err
		}
		item, err := req.resolve(tx)
		if err != nil {
			return err
		}
		ing := recipe.AddIngredient(item, req.Quantity, req.Units, req.preparation())
		return tx.Ingredients().Create(ing)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipe.ToDict())
}

// deleteByID runs del for the id in the URL and replies 204.
func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request, del func(tx *store.Tx, id int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		return del(tx, id)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
