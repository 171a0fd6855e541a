package api

import (
	"net/http"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

type stockRequest struct {
	BaseItemID int64  `json:"baseitem_id"`
	Name       string `json:"name"`
}

func (s *Server) listShops(w http.ResponseWriter, r *http.Request) {
	servePage(s, w, r, shopStages, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.Shop], error) {
		return tx.Shops().Query(filters...), nil
	})
}

func (s *Server) getShop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var shop *types.Shop
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		shop, err = tx.Shops().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shop.ToDict())
}

func (s *Server) createShop(w http.ResponseWriter, r *http.Request) {
	name, err := decodeName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	shop := &types.Shop{Name: name}
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		return tx.Shops().Create(shop)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shop.ToDict())
}

func (s *Server) deleteShop(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(tx *store.Tx, id int64) error {
		return tx.Shops().Delete(id)
	})
}

// listShopCatalog pages through the base items stocked anywhere in the shop.
func (s *Server) listShopCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	servePage(s, w, r, baseItemStages, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.BaseItem], error) {
		return tx.Shops().Catalog(id, filters...)
	})
}

func (s *Server) createAisle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := decodeName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var aisle *types.Aisle
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		shop, err := tx.Shops().Get(id)
		if err != nil {
			return err
		}
		aisle = shop.CreateAisle(name)
		return tx.Aisles().Create(aisle)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, aisle.ToDict())
}

func (s *Server) getAisle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var aisle *types.Aisle
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		aisle, err = tx.Aisles().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aisle.ToDict())
}

// stockAisle adds a base item, by id or by name, to an aisle.
func (s *Server) stockAisle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var aisle *types.Aisle
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		if _, err := tx.Aisles().Get(id); err != nil {
			return err
		}
		item, err := ingredientRequest{BaseItemID: req.BaseItemID, Name: req.Name}.resolve(tx)
		if err != nil {
			return err
		}
		if err := tx.Aisles().AddItem(id, item.BaseItemID); err != nil {
			return err
		}
		aisle, err = tx.Aisles().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, aisle.ToDict())
}

func (s *Server) unstockAisle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "baseitem_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		return tx.Aisles().RemoveItem(id, itemID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
