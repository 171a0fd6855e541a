package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

func TestShoppingListLifecycle(t *testing.T) {
	h, _ := newTestAPI(t)

	rec, list := call(t, h, http.MethodPost, "/shoppinglist", map[string]any{
		"date":  "2024-05-01",
		"items": []map[string]any{{"name": "Milk", "quantity": 2}},
	})
	requireStatus(t, rec, http.StatusCreated)
	listID := idOf(t, list, "shoppinglist_id")
	assert.Equal(t, "2024-05-01", list["date"])

	rec, list = call(t, h, http.MethodPost, fmt.Sprintf("/shoppinglist/%d/items", listID), map[string]any{"name": "Eggs", "quantity": 12})
	requireStatus(t, rec, http.StatusCreated)
	items := list["items"].([]any)
	require.Len(t, items, 2)
	eggs := items[1].(map[string]any)
	assert.Equal(t, "Eggs", eggs["name"])
	assert.Equal(t, false, eggs["is_purchased"])

	itemID := idOf(t, eggs, "shoppinglistitem_id")
	rec, item := call(t, h, http.MethodPatch, fmt.Sprintf("/shoppinglistitem/%d", itemID), map[string]any{"is_purchased": true})
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, true, item["is_purchased"])
	assert.Equal(t, 12.0, item["quantity"])

	rec, _ = call(t, h, http.MethodPatch, fmt.Sprintf("/shoppinglistitem/%d", itemID), map[string]any{})
	requireStatus(t, rec, http.StatusBadRequest)
	rec, _ = call(t, h, http.MethodPatch, "/shoppinglistitem/999", map[string]any{"quantity": 1})
	requireStatus(t, rec, http.StatusNotFound)

	rec, list = call(t, h, http.MethodGet, fmt.Sprintf("/shoppinglist/%d", listID), nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, true, list["items"].([]any)[1].(map[string]any)["is_purchased"])

	rec, _ = call(t, h, http.MethodDelete, fmt.Sprintf("/shoppinglist/%d", listID), nil)
	requireStatus(t, rec, http.StatusNoContent)
	rec, _ = call(t, h, http.MethodPatch, fmt.Sprintf("/shoppinglistitem/%d", itemID), map[string]any{"quantity": 1})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestShoppingListDefaultsToToday(t *testing.T) {
	h, _ := newTestAPI(t)

	rec, list := call(t, h, http.MethodPost, "/shoppinglist", map[string]any{})
	requireStatus(t, rec, http.StatusCreated)
	assert.Equal(t, types.Today().String(), list["date"])
	assert.Equal(t, []any{}, list["items"])
}

func TestListShoppingListsNewestFirst(t *testing.T) {
	h, _ := newTestAPI(t)
	for _, date := range []string{"2024-01-01", "2024-06-01", "2024-03-01"} {
		rec, _ := call(t, h, http.MethodPost, "/shoppinglist", map[string]any{"date": date})
		requireStatus(t, rec, http.StatusCreated)
	}

	rec, page := call(t, h, http.MethodGet, "/shoppinglists", nil)
	requireStatus(t, rec, http.StatusOK)
	var dates []any
	for _, it := range page["items"].([]any) {
		dates = append(dates, it.(map[string]any)["date"])
	}
	assert.Equal(t, []any{"2024-06-01", "2024-03-01", "2024-01-01"}, dates)
}
