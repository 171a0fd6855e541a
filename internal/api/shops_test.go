package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopAislesAndCatalog(t *testing.T) {
	h, _ := newTestAPI(t)

	rec, shop := call(t, h, http.MethodPost, "/shop", map[string]any{"name": "Corner grocer"})
	requireStatus(t, rec, http.StatusCreated)
	shopID := idOf(t, shop, "shop_id")
	assert.Equal(t, []any{}, shop["aisles"])

	rec, aisle := call(t, h, http.MethodPost, fmt.Sprintf("/shop/%d/aisles", shopID), map[string]any{"name": "Vegetables"})
	requireStatus(t, rec, http.StatusCreated)
	aisleID := idOf(t, aisle, "aisle_id")
	assert.Equal(t, float64(shopID), aisle["shop_id"])

	for _, name := range []string{"Leek", "Carrot"} {
		rec, _ = call(t, h, http.MethodPost, fmt.Sprintf("/aisle/%d/baseitems", aisleID), map[string]any{"name": name})
		requireStatus(t, rec, http.StatusCreated)
	}
	// Stocking twice is a no-op.
	rec, aisle = call(t, h, http.MethodPost, fmt.Sprintf("/aisle/%d/baseitems", aisleID), map[string]any{"name": "leek"})
	requireStatus(t, rec, http.StatusCreated)
	require.Len(t, aisle["baseitems"], 2)

	rec, shop = call(t, h, http.MethodGet, fmt.Sprintf("/shop/%d", shopID), nil)
	requireStatus(t, rec, http.StatusOK)
	aisles := shop["aisles"].([]any)
	require.Len(t, aisles, 1)
	assert.Equal(t, map[string]any{"aisle_id": float64(aisleID), "name": "Vegetables"}, aisles[0])

	rec, page := call(t, h, http.MethodGet, fmt.Sprintf("/shop/%d/baseitems", shopID), nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, 2.0, page["_meta"].(map[string]any)["total_items"])

	rec, page = call(t, h, http.MethodGet, fmt.Sprintf("/shop/%d/baseitems?q=carr", shopID), nil)
	requireStatus(t, rec, http.StatusOK)
	items := page["items"].([]any)
	require.Len(t, items, 1)
	carrotID := int64(items[0].(map[string]any)["baseitem_id"].(float64))

	rec, _ = call(t, h, http.MethodDelete, fmt.Sprintf("/aisle/%d/baseitem/%d", aisleID, carrotID), nil)
	requireStatus(t, rec, http.StatusNoContent)
	rec, _ = call(t, h, http.MethodDelete, fmt.Sprintf("/aisle/%d/baseitem/%d", aisleID, carrotID), nil)
	requireStatus(t, rec, http.StatusNotFound)

	rec, aisle = call(t, h, http.MethodGet, fmt.Sprintf("/aisle/%d", aisleID), nil)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, aisle["baseitems"], 1)
}

func TestShopNotFound(t *testing.T) {
	h, _ := newTestAPI(t)

	rec, _ := call(t, h, http.MethodGet, "/shop/7/baseitems", nil)
	requireStatus(t, rec, http.StatusNotFound)

	rec, _ = call(t, h, http.MethodPost, "/shop/7/aisles", map[string]any{"name": "Dairy"})
	requireStatus(t, rec, http.StatusNotFound)

	rec, _ = call(t, h, http.MethodPost, "/aisle/7/baseitems", map[string]any{"name": "Milk"})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestDeleteShopRemovesAisles(t *testing.T) {
	h, _ := newTestAPI(t)
	rec, shop := call(t, h, http.MethodPost, "/shop", map[string]any{"name": "Market"})
	requireStatus(t, rec, http.StatusCreated)
	shopID := idOf(t, shop, "shop_id")
	rec, aisle := call(t, h, http.MethodPost, fmt.Sprintf("/shop/%d/aisles", shopID), map[string]any{"name": "Fish"})
	requireStatus(t, rec, http.StatusCreated)

	rec, _ = call(t, h, http.MethodDelete, fmt.Sprintf("/shop/%d", shopID), nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec, _ = call(t, h, http.MethodGet, fmt.Sprintf("/aisle/%d", idOf(t, aisle, "aisle_id")), nil)
	requireStatus(t, rec, http.StatusNotFound)
}
