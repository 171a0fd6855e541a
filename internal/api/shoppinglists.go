package api

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

type listItemRequest struct {
	BaseItemID int64  `json:"baseitem_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

type shoppingListRequest struct {
	Date  types.Date        `json:"date"`
	Items []listItemRequest `json:"items"`
}

type listItemPatch struct {
	IsPurchased *bool `json:"is_purchased"`
	Quantity    *int  `json:"quantity"`
}

func (ir listItemRequest) resolve(tx *store.Tx) (*types.BaseItem, error) {
	return ingredientRequest{BaseItemID: ir.BaseItemID, Name: ir.Name}.resolve(tx)
}

func (s *Server) listShoppingLists(w http.ResponseWriter, r *http.Request) {
	servePage(s, w, r, nil, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.ShoppingList], error) {
		return tx.ShoppingLists().Query(filters...), nil
	})
}

func (s *Server) getShoppingList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var list *types.ShoppingList
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		list, err = tx.ShoppingLists().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list.ToDict())
}

// createShoppingList creates a list dated today unless a date is given.
func (s *Server) createShoppingList(w http.ResponseWriter, r *http.Request) {
	var req shoppingListRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	list := &types.ShoppingList{Date: req.Date}
	err := s.store.Update(r.Context(), func(tx *store.Tx) error {
		for _, ir := range req.Items {
			item, err := ir.resolve(tx)
			if err != nil {
				return err
			}
			list.AddItem(item, ir.Quantity)
		}
		return tx.ShoppingLists().Create(list)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list.ToDict())
}

func (s *Server) deleteShoppingList(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(tx *store.Tx, id int64) error {
		return tx.ShoppingLists().Delete(id)
	})
}

func (s *Server) addShoppingListItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req listItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var list *types.ShoppingList
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		if list, err = tx.ShoppingLists().Get(id); err != nil {
			return err
		}
		item, err := req.resolve(tx)
		if err != nil {
			return err
		}
		return tx.ShoppingListItems().Create(list.AddItem(item, req.Quantity))
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list.ToDict())
}

// updateShoppingListItem marks an item purchased or changes its quantity.
// Omitted fields keep their value.
func (s *Server) updateShoppingListItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req listItemPatch
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.IsPurchased == nil && req.Quantity == nil {
		s.writeError(w, r, fmt.Errorf("%w: nothing to update", types.ErrInvalidData))
		return
	}

	var item *types.ShoppingListItem
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		if item, err = tx.ShoppingListItems().Get(id); err != nil {
			return err
		}
		if req.IsPurchased != nil {
			item.IsPurchased = *req.IsPurchased
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		return tx.ShoppingListItems().Update(item)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item.ToDict())
}
