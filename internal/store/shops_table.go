package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const shopColumns = "shop_id, name"

// catalogFrom is the distinct set of base items stocked in a shop's aisles.
const catalogFrom = "(SELECT b.baseitem_id, b.name FROM baseitems b WHERE b.baseitem_id IN (" +
	"SELECT ai.baseitem_id FROM aisles_items ai JOIN aisles a ON a.aisle_id = ai.aisle_id WHERE a.shop_id = ?" +
	")) catalog"

// ShopsTable accesses the shops table.
type ShopsTable struct {
	tx *Tx
}

func hydrateShop(row rowScanner) (*types.Shop, error) {
	s := &types.Shop{}
	if err := row.Scan(&s.ShopID, &s.Name); err != nil {
		return nil, err
	}
	s.Aisles = []*types.Aisle{}
	return s, nil
}

// Get returns the shop with the given id and its aisles.
func (t *ShopsTable) Get(id int64) (*types.Shop, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	s, err := hydrateShop(t.tx.queryRow("SELECT "+shopColumns+" FROM shops WHERE shop_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting shop %d: %w", id, err)
	}
	if err := t.attachAisles([]*types.Shop{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts the shop and any unsaved aisles created on it.
func (t *ShopsTable) Create(s *types.Shop) error {
	if s == nil {
		return types.ErrInvalidData
	}
	if !validName(s.Name) {
		return types.ErrInvalidName
	}
	id, err := t.tx.insert("INSERT INTO shops (name) VALUES (?) RETURNING shop_id", s.Name)
	if err != nil {
		return fmt.Errorf("inserting shop: %w", err)
	}
	s.ShopID = id

	aisles := t.tx.Aisles()
	for _, a := range s.Aisles {
		a.ShopID = id
		if err := aisles.Create(a); err != nil {
			return fmt.Errorf("adding aisle to shop %d: %w", id, err)
		}
	}
	if s.Aisles == nil {
		s.Aisles = []*types.Aisle{}
	}
	return nil
}

// Update renames an existing shop.
func (t *ShopsTable) Update(s *types.Shop) error {
	if s == nil {
		return types.ErrInvalidData
	}
	if s.ShopID <= 0 {
		return types.ErrInvalidID
	}
	if !validName(s.Name) {
		return types.ErrInvalidName
	}
	res, err := t.tx.exec("UPDATE shops SET name = ? WHERE shop_id = ?", s.Name, s.ShopID)
	if err != nil {
		return fmt.Errorf("updating shop %d: %w", s.ShopID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a shop, its aisles and what they stock.
func (t *ShopsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.exists("SELECT 1 FROM shops WHERE shop_id = ?", id)
	if err != nil {
		return fmt.Errorf("checking shop existence: %w", err)
	}
	if !ok {
		return types.ErrNotFound
	}

	if _, err := t.tx.exec(
		"DELETE FROM aisles_items WHERE aisle_id IN (SELECT aisle_id FROM aisles WHERE shop_id = ?)", id,
	); err != nil {
		return fmt.Errorf("deleting shop aisle items: %w", err)
	}
	if _, err := t.tx.exec("DELETE FROM aisles WHERE shop_id = ?", id); err != nil {
		return fmt.Errorf("deleting shop aisles: %w", err)
	}
	if _, err := t.tx.deleteByID(types.TableShops, "shop_id", id); err != nil {
		return fmt.Errorf("deleting shop: %w", err)
	}
	return nil
}

// Query selects shops matching every filter, ordered by id, with aisles.
func (t *ShopsTable) Query(filters ...Filter) *Query[*types.Shop] {
	q := newQuery(t.tx, "shops", shopColumns, "shop_id", hydrateShop, filters)
	q.hydrate = t.attachAisles
	return q
}

// Catalog selects the distinct base items stocked across the shop's aisles.
// Filters apply to the base items. Returns ErrNotFound for an unknown shop.
func (t *ShopsTable) Catalog(id int64, filters ...Filter) (*Query[*types.BaseItem], error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	ok, err := t.tx.exists("SELECT 1 FROM shops WHERE shop_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("checking shop existence: %w", err)
	}
	if !ok {
		return nil, types.ErrNotFound
	}
	q := newQuery(t.tx, catalogFrom, baseItemColumns, "baseitem_id", hydrateBaseItem, filters)
	q.fromArgs = []any{id}
	return q, nil
}

func (t *ShopsTable) attachAisles(shops []*types.Shop) error {
	ids := make([]int64, len(shops))
	byID := make(map[int64]*types.Shop, len(shops))
	for i, s := range shops {
		ids[i] = s.ShopID
		byID[s.ShopID] = s
		s.Aisles = []*types.Aisle{}
	}
	aisles, err := t.tx.Aisles().ForShops(ids...)
	if err != nil {
		return err
	}
	for _, a := range aisles {
		if s := byID[a.ShopID]; s != nil {
			s.Aisles = append(s.Aisles, a)
		}
	}
	return nil
}
