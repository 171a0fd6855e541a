package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const aisleColumns = "aisle_id, shop_id, name"

// AislesTable accesses the aisles table and the aisles_items join table.
type AislesTable struct {
	tx *Tx
}

func hydrateAisle(row rowScanner) (*types.Aisle, error) {
	a := &types.Aisle{}
	if err := row.Scan(&a.AisleID, &a.ShopID, &a.Name); err != nil {
		return nil, err
	}
	a.BaseItems = []*types.BaseItem{}
	return a, nil
}

func hydrateAisleItem(row rowScanner) (types.AisleItem, error) {
	var ai types.AisleItem
	err := row.Scan(&ai.AisleID, &ai.BaseItemID)
	return ai, err
}

// Get returns the aisle with the given id and the base items it stocks.
func (t *AislesTable) Get(id int64) (*types.Aisle, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	a, err := hydrateAisle(t.tx.queryRow("SELECT "+aisleColumns+" FROM aisles WHERE aisle_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting aisle %d: %w", id, err)
	}
	if err := t.attachItems([]*types.Aisle{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an aisle into an existing shop and stocks any base items
// already added to it. Unsaved base items are inserted.
func (t *AislesTable) Create(a *types.Aisle) error {
	if a == nil {
		return types.ErrInvalidData
	}
	if a.ShopID <= 0 {
		return types.ErrInvalidID
	}
	if !validName(a.Name) {
		return types.ErrInvalidName
	}
	if ok, err := t.tx.exists("SELECT 1 FROM shops WHERE shop_id = ?", a.ShopID); err != nil {
		return fmt.Errorf("checking shop existence: %w", err)
	} else if !ok {
		return fmt.Errorf("shop %d: %w", a.ShopID, types.ErrNotFound)
	}

	id, err := t.tx.insert("INSERT INTO aisles (shop_id, name) VALUES (?, ?) RETURNING aisle_id", a.ShopID, a.Name)
	if err != nil {
		return fmt.Errorf("inserting aisle: %w", err)
	}
	a.AisleID = id

	for _, item := range a.BaseItems {
		if item.BaseItemID == 0 {
			if err := t.tx.BaseItems().Create(item); err != nil {
				return err
			}
		}
		if err := t.link(id, item.BaseItemID); err != nil {
			return err
		}
	}
	if a.BaseItems == nil {
		a.BaseItems = []*types.BaseItem{}
	}
	return nil
}

// Update renames an existing aisle.
func (t *AislesTable) Update(a *types.Aisle) error {
	if a == nil {
		return types.ErrInvalidData
	}
	if a.AisleID <= 0 {
		return types.ErrInvalidID
	}
	if !validName(a.Name) {
		return types.ErrInvalidName
	}
	res, err := t.tx.exec("UPDATE aisles SET name = ? WHERE aisle_id = ?", a.Name, a.AisleID)
	if err != nil {
		return fmt.Errorf("updating aisle %d: %w", a.AisleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes an aisle and unstocks its base items.
func (t *AislesTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	if _, err := t.tx.exec("DELETE FROM aisles_items WHERE aisle_id = ?", id); err != nil {
		return fmt.Errorf("deleting aisle items: %w", err)
	}
	ok, err := t.tx.deleteByID(types.TableAisles, "aisle_id", id)
	if err != nil {
		return fmt.Errorf("deleting aisle %d: %w", id, err)
	}
	if !ok {
		return types.ErrNotFound
	}
	return nil
}

// Query selects aisles matching every filter, ordered by id, with items.
func (t *AislesTable) Query(filters ...Filter) *Query[*types.Aisle] {
	q := newQuery(t.tx, "aisles", aisleColumns, "aisle_id", hydrateAisle, filters)
	q.hydrate = t.attachItems
	return q
}

// AddItem stocks a base item in an aisle. Stocking an item twice is a no-op.
// Both must exist.
func (t *AislesTable) AddItem(aisleID, baseItemID int64) error {
	if aisleID <= 0 || baseItemID <= 0 {
		return types.ErrInvalidID
	}
	if ok, err := t.tx.exists("SELECT 1 FROM aisles WHERE aisle_id = ?", aisleID); err != nil {
		return fmt.Errorf("checking aisle existence: %w", err)
	} else if !ok {
		return fmt.Errorf("aisle %d: %w", aisleID, types.ErrNotFound)
	}
	if _, err := t.tx.BaseItems().Get(baseItemID); err != nil {
		return fmt.Errorf("base item %d: %w", baseItemID, err)
	}
	return t.link(aisleID, baseItemID)
}

// RemoveItem unstocks a base item. Returns ErrNotFound when it was not stocked.
func (t *AislesTable) RemoveItem(aisleID, baseItemID int64) error {
	res, err := t.tx.exec("DELETE FROM aisles_items WHERE aisle_id = ? AND baseitem_id = ?", aisleID, baseItemID)
	if err != nil {
		return fmt.Errorf("unstocking base item %d from aisle %d: %w", baseItemID, aisleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Items returns the join rows of an aisle.
func (t *AislesTable) Items(aisleID int64) ([]types.AisleItem, error) {
	rows, err := t.tx.query(
		"SELECT aisle_id, baseitem_id FROM aisles_items WHERE aisle_id = ? ORDER BY baseitem_id", aisleID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying aisle items: %w", err)
	}
	return collect(rows, hydrateAisleItem)
}

// ForShops returns the aisles of the given shops ordered by id, without items.
func (t *AislesTable) ForShops(shopIDs ...int64) ([]*types.Aisle, error) {
	if len(shopIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(shopIDs)
	rows, err := t.tx.query("SELECT "+aisleColumns+" FROM aisles WHERE shop_id IN "+in+" ORDER BY aisle_id", args...)
	if err != nil {
		return nil, fmt.Errorf("querying aisles: %w", err)
	}
	return collect(rows, hydrateAisle)
}

func (t *AislesTable) link(aisleID, baseItemID int64) error {
	_, err := t.tx.exec(
		"INSERT INTO aisles_items (aisle_id, baseitem_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		aisleID, baseItemID,
	)
	if err != nil {
		return fmt.Errorf("stocking base item %d in aisle %d: %w", baseItemID, aisleID, err)
	}
	return nil
}

func (t *AislesTable) attachItems(aisles []*types.Aisle) error {
	ids := make([]int64, len(aisles))
	byID := make(map[int64]*types.Aisle, len(aisles))
	for i, a := range aisles {
		ids[i] = a.AisleID
		byID[a.AisleID] = a
		a.BaseItems = []*types.BaseItem{}
	}
	in, args := inClause(ids)
	rows, err := t.tx.query(
		"SELECT aisle_id, baseitem_id FROM aisles_items WHERE aisle_id IN "+in+" ORDER BY baseitem_id", args...,
	)
	if err != nil {
		return fmt.Errorf("querying aisle items: %w", err)
	}
	links, err := collect(rows, hydrateAisleItem)
	if err != nil {
		return fmt.Errorf("reading aisle items: %w", err)
	}

	itemIDs := make([]int64, len(links))
	for i, l := range links {
		itemIDs[i] = l.BaseItemID
	}
	items, err := t.tx.BaseItems().byID(itemIDs)
	if err != nil {
		return err
	}
	for _, l := range links {
		if a, b := byID[l.AisleID], items[l.BaseItemID]; a != nil && b != nil {
			a.BaseItems = append(a.BaseItems, b)
		}
	}
	return nil
}
