package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

func TestApplyStages(t *testing.T) {
	tests := []struct {
		name    string
		stages  []FilterStage
		query   string
		want    int
		wantErr error
	}{
		{name: "no params", stages: recipeStages, query: "", want: 0},
		{name: "name and q", stages: recipeStages, query: "name=a&q=b", want: 2},
		{name: "date range", stages: mealplanStages, query: "from=2024-01-01&to=2024-01-31", want: 2},
		{name: "recipes ignore dates", stages: recipeStages, query: "from=2024-01-01", want: 0},
		{name: "bad date", stages: mealplanStages, query: "to=31/01/2024", wantErr: types.ErrInvalidDate},
		{name: "nil stages", stages: nil, query: "q=x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			filters, err := applyStages(tt.stages, v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, filters, tt.want)
		})
	}
}
