package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const baseItemColumns = "baseitem_id, name"

// BaseItemsTable accesses the baseitems table.
type BaseItemsTable struct {
	tx *Tx
}

func hydrateBaseItem(row rowScanner) (*types.BaseItem, error) {
	b := &types.BaseItem{}
	if err := row.Scan(&b.BaseItemID, &b.Name); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns the base item with the given id, or ErrNotFound.
func (t *BaseItemsTable) Get(id int64) (*types.BaseItem, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	b, err := hydrateBaseItem(t.tx.queryRow(
		"SELECT "+baseItemColumns+" FROM baseitems WHERE baseitem_id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting base item %d: %w", id, err)
	}
	return b, nil
}

// Create inserts item and sets its id. The name must not be blank.
func (t *BaseItemsTable) Create(item *types.BaseItem) error {
	if item == nil {
		return types.ErrInvalidData
	}
	if !validName(item.Name) {
		return types.ErrInvalidName
	}
	id, err := t.tx.insert("INSERT INTO baseitems (name) VALUES (?) RETURNING baseitem_id", item.Name)
	if err != nil {
		return fmt.Errorf("inserting base item: %w", err)
	}
	item.BaseItemID = id
	return nil
}

// Update renames an existing base item.
func (t *BaseItemsTable) Update(item *types.BaseItem) error {
	if item == nil {
		return types.ErrInvalidData
	}
	if item.BaseItemID <= 0 {
		return types.ErrInvalidID
	}
	if !validName(item.Name) {
		return types.ErrInvalidName
	}
	res, err := t.tx.exec("UPDATE baseitems SET name = ? WHERE baseitem_id = ?", item.Name, item.BaseItemID)
	if err != nil {
		return fmt.Errorf("updating base item %d: %w", item.BaseItemID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a base item and unstocks it from every aisle. A base item
// still used by an ingredient or a shopping-list item is not deleted;
// ErrReferenced is returned instead.
func (t *BaseItemsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	if _, err := t.Get(id); err != nil {
		return err
	}

	referenced, err := t.tx.exists(
		"SELECT 1 FROM ingredients WHERE baseitem_id = ? UNION ALL SELECT 1 FROM shoppinglistitems WHERE baseitem_id = ? LIMIT 1",
		id, id,
	)
	if err != nil {
		return fmt.Errorf("checking base item references: %w", err)
	}
	if referenced {
		return fmt.Errorf("base item %d: %w", id, types.ErrReferenced)
	}

	if _, err := t.tx.exec("DELETE FROM aisles_items WHERE baseitem_id = ?", id); err != nil {
		return fmt.Errorf("unstocking base item: %w", err)
	}
	if _, err := t.tx.deleteByID(types.TableBaseItems, "baseitem_id", id); err != nil {
		return fmt.Errorf("deleting base item: %w", err)
	}
	return nil
}

// Query selects base items matching every filter, ordered by id.
func (t *BaseItemsTable) Query(filters ...Filter) *Query[*types.BaseItem] {
	return newQuery(t.tx, "baseitems", baseItemColumns, "baseitem_id", hydrateBaseItem, filters)
}

// FindByName returns the base items whose name contains term, ignoring case.
func (t *BaseItemsTable) FindByName(term string) ([]*types.BaseItem, error) {
	return t.Query(NameContains(term)).All()
}

// FindOrCreate returns the base item named name, compared without case, and
// creates it when none exists.
func (t *BaseItemsTable) FindOrCreate(name string) (*types.BaseItem, error) {
	if !validName(name) {
		return nil, types.ErrInvalidName
	}
	b, err := hydrateBaseItem(t.tx.queryRow(
		"SELECT "+baseItemColumns+" FROM baseitems WHERE LOWER(name) = LOWER(?) ORDER BY baseitem_id LIMIT 1", name,
	))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("finding base item %q: %w", name, err)
	}
	b = types.NewBaseItem(name)
	if err := t.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Shops returns the distinct shops stocking the base item in any aisle.
func (t *BaseItemsTable) Shops(id int64) ([]*types.Shop, error) {
	rows, err := t.tx.query(
		"SELECT "+shopColumns+" FROM shops WHERE shop_id IN ("+
			"SELECT a.shop_id FROM aisles a JOIN aisles_items ai ON ai.aisle_id = a.aisle_id WHERE ai.baseitem_id = ?"+
			") ORDER BY shop_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying shops for base item %d: %w", id, err)
	}
	return collect(rows, hydrateShop)
}

// byID loads the base items with the given ids, keyed by id.
func (t *BaseItemsTable) byID(ids []int64) (map[int64]*types.BaseItem, error) {
	out := make(map[int64]*types.BaseItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	in, args := inClause(ids)
	rows, err := t.tx.query("SELECT "+baseItemColumns+" FROM baseitems WHERE baseitem_id IN "+in, args...)
	if err != nil {
		return nil, fmt.Errorf("loading base items: %w", err)
	}
	items, err := collect(rows, hydrateBaseItem)
	if err != nil {
		return nil, fmt.Errorf("loading base items: %w", err)
	}
	for _, b := range items {
		out[b.BaseItemID] = b
	}
	return out, nil
}
