package api

import (
	"net/http"

	"github.com/mesh-intelligence/shoppr/internal/pagination"
	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// servePage replies with one page of the collection selected by query,
// filtered by the given stages.
func servePage[T types.Dicter](s *Server, w http.ResponseWriter, r *http.Request, stages []FilterStage,
	query func(tx *store.Tx, filters []store.Filter) (*store.Query[T], error)) {
	values := r.URL.Query()
	filters, err := applyStages(stages, values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	links := pagination.LinkBuilder{Path: r.URL.Path, Query: values}
	var page *pagination.Page
	err = s.store.View(r.Context(), func(tx *store.Tx) error {
		q, err := query(tx, filters)
		if err != nil {
			return err
		}
		page, err = pagination.Paginate[T](q, pagination.FromValues(values), links, func(v T) types.Dict {
			return v.ToDict()
		})
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
