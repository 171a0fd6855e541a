package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

type nameRequest struct {
	Name string `json:"name"`
}

// decodeName reads a {"name": ...} body and rejects a blank name.
func decodeName(r *http.Request) (string, error) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", fmt.Errorf("%w: name is required", types.ErrInvalidName)
	}
	return req.Name, nil
}

func (s *Server) listBaseItems(w http.ResponseWriter, r *http.Request) {
	servePage(s, w, r, baseItemStages, func(tx *store.Tx, filters []store.Filter) (*store.Query[*types.BaseItem], error) {
		return tx.BaseItems().Query(filters...), nil
	})
}

func (s *Server) getBaseItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var item *types.BaseItem
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		item, err = tx.BaseItems().Get(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item.ToDict())
}

func (s *Server) createBaseItem(w http.ResponseWriter, r *http.Request) {
	name, err := decodeName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	item := types.NewBaseItem(name)
	err = s.store.Update(r.Context(), func(tx *store.Tx) error {
		return tx.BaseItems().Create(item)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item.ToDict())
}

func (s *Server) deleteBaseItem(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(tx *store.Tx, id int64) error {
		return tx.BaseItems().Delete(id)
	})
}
