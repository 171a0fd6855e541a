package api

import (
	"fmt"
	"net/url"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// FilterStage derives store filters from query parameters. A collection's
// stages run in order and their filters are AND-ed, so new parameters are
// supported by appending a stage.
type FilterStage func(url.Values) ([]store.Filter, error)

// Stage lists per collection. Recipes do not register a from/to date stage.
var (
	recipeStages   = []FilterStage{nameStage("name"), nameStage("q")}
	baseItemStages = []FilterStage{nameStage("name"), nameStage("q")}
	shopStages     = []FilterStage{nameStage("name"), nameStage("q")}
	mealStages     = []FilterStage{descriptionStage("q")}
	mealplanStages = []FilterStage{
		dateStage("from", store.DateOnOrAfter),
		dateStage("to", store.DateOnOrBefore),
	}
)

// nameStage matches names containing the value of param, ignoring case.
func nameStage(param string) FilterStage {
	return func(v url.Values) ([]store.Filter, error) {
		if term := v.Get(param); term != "" {
			return []store.Filter{store.NameContains(term)}, nil
		}
		return nil, nil
	}
}

func descriptionStage(param string) FilterStage {
	return func(v url.Values) ([]store.Filter, error) {
		if term := v.Get(param); term != "" {
			return []store.Filter{store.DescriptionContains(term)}, nil
		}
		return nil, nil
	}
}

// dateStage parses param as YYYY-MM-DD and applies filter to it.
func dateStage(param string, filter func(types.Date) store.Filter) FilterStage {
	return func(v url.Values) ([]store.Filter, error) {
		raw := v.Get(param)
		if raw == "" {
			return nil, nil
		}
		d, err := types.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", param, err)
		}
		return []store.Filter{filter(d)}, nil
	}
}

// applyStages runs stages over v and collects their filters.
func applyStages(stages []FilterStage, v url.Values) ([]store.Filter, error) {
	var filters []store.Filter
	for _, stage := range stages {
		fs, err := stage(v)
		if err != nil {
			return nil, err
		}
		filters = append(filters, fs...)
	}
	return filters, nil
}
