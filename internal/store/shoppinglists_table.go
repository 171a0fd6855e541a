package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const (
	shoppingListColumns     = "shoppinglist_id, date"
	shoppingListItemColumns = "shoppinglistitem_id, shoppinglist_id, baseitem_id, quantity, is_purchased"
)

// ShoppingListsTable accesses the shoppinglists table.
type ShoppingListsTable struct {
	tx *Tx
}

func hydrateShoppingList(row rowScanner) (*types.ShoppingList, error) {
	l := &types.ShoppingList{}
	var date string
	if err := row.Scan(&l.ShoppingListID, &date); err != nil {
		return nil, err
	}
	l.Date = parseStoredDate(date)
	l.Items = []*types.ShoppingListItem{}
	return l, nil
}

// Get returns the shopping list with the given id and all of its items.
func (t *ShoppingListsTable) Get(id int64) (*types.ShoppingList, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	l, err := hydrateShoppingList(t.tx.queryRow(
		"SELECT "+shoppingListColumns+" FROM shoppinglists WHERE shoppinglist_id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting shopping list %d: %w", id, err)
	}
	if err := t.attachItems([]*types.ShoppingList{l}); err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts the list and the items already added to it. A zero date
// means today.
func (t *ShoppingListsTable) Create(l *types.ShoppingList) error {
	if l == nil {
		return types.ErrInvalidData
	}
	if l.Date.IsZero() {
		l.Date = types.Today()
	}
	id, err := t.tx.insert(
		"INSERT INTO shoppinglists (date) VALUES (?) RETURNING shoppinglist_id", l.Date.String(),
	)
	if err != nil {
		return fmt.Errorf("inserting shopping list: %w", err)
	}
	l.ShoppingListID = id

	items := t.tx.ShoppingListItems()
	for _, it := range l.Items {
		it.ShoppingListID = id
		if err := items.Create(it); err != nil {
			return fmt.Errorf("adding item to shopping list %d: %w", id, err)
		}
	}
	if l.Items == nil {
		l.Items = []*types.ShoppingListItem{}
	}
	return nil
}

// Delete removes a shopping list and its items.
func (t *ShoppingListsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.exists("SELECT 1 FROM shoppinglists WHERE shoppinglist_id = ?", id)
	if err != nil {
		return fmt.Errorf("checking shopping list existence: %w", err)
	}
	if !ok {
		return types.ErrNotFound
	}
	if _, err := t.tx.exec("DELETE FROM shoppinglistitems WHERE shoppinglist_id = ?", id); err != nil {
		return fmt.Errorf("deleting shopping list items: %w", err)
	}
	if _, err := t.tx.deleteByID(types.TableShoppingLists, "shoppinglist_id", id); err != nil {
		return fmt.Errorf("deleting shopping list: %w", err)
	}
	return nil
}

// Query selects shopping lists matching every filter, newest date first,
// with items.
func (t *ShoppingListsTable) Query(filters ...Filter) *Query[*types.ShoppingList] {
	q := newQuery(t.tx, "shoppinglists", shoppingListColumns, "date DESC, shoppinglist_id DESC", hydrateShoppingList, filters)
	q.hydrate = t.attachItems
	return q
}

func (t *ShoppingListsTable) attachItems(lists []*types.ShoppingList) error {
	ids := make([]int64, len(lists))
	byID := make(map[int64]*types.ShoppingList, len(lists))
	for i, l := range lists {
		ids[i] = l.ShoppingListID
		byID[l.ShoppingListID] = l
		l.Items = []*types.ShoppingListItem{}
	}
	items, err := t.tx.ShoppingListItems().forLists(ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if l := byID[it.ShoppingListID]; l != nil {
			l.Items = append(l.Items, it)
		}
	}
	return nil
}

// ShoppingListItemsTable accesses the shoppinglistitems table.
type ShoppingListItemsTable struct {
	tx *Tx
}

func hydrateShoppingListItem(row rowScanner) (*types.ShoppingListItem, error) {
	it := &types.ShoppingListItem{}
	if err := row.Scan(&it.ShoppingListItemID, &it.ShoppingListID, &it.BaseItemID, &it.Quantity, &it.IsPurchased); err != nil {
		return nil, err
	}
	return it, nil
}

// Get returns the item with the given id and its base item.
func (t *ShoppingListItemsTable) Get(id int64) (*types.ShoppingListItem, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	it, err := hydrateShoppingListItem(t.tx.queryRow(
		"SELECT "+shoppingListItemColumns+" FROM shoppinglistitems WHERE shoppinglistitem_id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting shopping list item %d: %w", id, err)
	}
	if err := t.attachBaseItems([]*types.ShoppingListItem{it}); err != nil {
		return nil, err
	}
	return it, nil
}

// Create adds an item to an existing list. A quantity below one is stored as
// types.DefaultItemQuantity. The base item must exist.
func (t *ShoppingListItemsTable) Create(it *types.ShoppingListItem) error {
	if it == nil {
		return types.ErrInvalidData
	}
	if it.ShoppingListID <= 0 {
		return types.ErrInvalidID
	}
	if it.BaseItem != nil && it.BaseItem.BaseItemID == 0 {
		if err := t.tx.BaseItems().Create(it.BaseItem); err != nil {
			return err
		}
	}
	if it.BaseItem != nil {
		it.BaseItemID = it.BaseItem.BaseItemID
	}
	if it.BaseItemID <= 0 {
		return types.ErrInvalidData
	}
	if it.Quantity < 1 {
		it.Quantity = types.DefaultItemQuantity
	}

	if ok, err := t.tx.exists("SELECT 1 FROM shoppinglists WHERE shoppinglist_id = ?", it.ShoppingListID); err != nil {
		return fmt.Errorf("checking shopping list existence: %w", err)
	} else if !ok {
		return fmt.Errorf("shopping list %d: %w", it.ShoppingListID, types.ErrNotFound)
	}
	if it.BaseItem == nil {
		item, err := t.tx.BaseItems().Get(it.BaseItemID)
		if err != nil {
			return fmt.Errorf("base item %d: %w", it.BaseItemID, err)
		}
		it.BaseItem = item
	}

	id, err := t.tx.insert(
		"INSERT INTO shoppinglistitems (shoppinglist_id, baseitem_id, quantity, is_purchased) VALUES (?, ?, ?, ?) RETURNING shoppinglistitem_id",
		it.ShoppingListID, it.BaseItemID, it.Quantity, it.IsPurchased,
	)
	if err != nil {
		return fmt.Errorf("inserting shopping list item: %w", err)
	}
	it.ShoppingListItemID = id
	return nil
}

// Update saves the quantity and purchased flag of an item.
func (t *ShoppingListItemsTable) Update(it *types.ShoppingListItem) error {
	if it == nil {
		return types.ErrInvalidData
	}
	if it.ShoppingListItemID <= 0 {
		return types.ErrInvalidID
	}
	if it.Quantity < 1 {
		it.Quantity = types.DefaultItemQuantity
	}
	res, err := t.tx.exec(
		"UPDATE shoppinglistitems SET quantity = ?, is_purchased = ? WHERE shoppinglistitem_id = ?",
		it.Quantity, it.IsPurchased, it.ShoppingListItemID,
	)
	if err != nil {
		return fmt.Errorf("updating shopping list item %d: %w", it.ShoppingListItemID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a single item from its list.
func (t *ShoppingListItemsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ok, err := t.tx.deleteByID(types.TableShoppingListItems, "shoppinglistitem_id", id)
	if err != nil {
		return fmt.Errorf("deleting shopping list item %d: %w", id, err)
	}
	if !ok {
		return types.ErrNotFound
	}
	return nil
}

func (t *ShoppingListItemsTable) forLists(listIDs []int64) ([]*types.ShoppingListItem, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(listIDs)
	rows, err := t.tx.query(
		"SELECT "+shoppingListItemColumns+" FROM shoppinglistitems WHERE shoppinglist_id IN "+in+" ORDER BY shoppinglistitem_id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying shopping list items: %w", err)
	}
	items, err := collect(rows, hydrateShoppingListItem)
	if err != nil {
		return nil, fmt.Errorf("reading shopping list items: %w", err)
	}
	if err := t.attachBaseItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (t *ShoppingListItemsTable) attachBaseItems(items []*types.ShoppingListItem) error {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.BaseItemID
	}
	byID, err := t.tx.BaseItems().byID(ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		it.BaseItem = byID[it.BaseItemID]
	}
	return nil
}
