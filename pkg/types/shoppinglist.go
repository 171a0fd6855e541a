package types

// DefaultItemQuantity is the quantity of a shopping-list item when none is given.
const DefaultItemQuantity = 1

// ShoppingList is a dated list of base items to buy.
type ShoppingList struct {
	ShoppingListID int64
	Date           Date

	Items []*ShoppingListItem
}

// AddItem appends an unpurchased entry for item. A quantity below one is
// replaced by DefaultItemQuantity.
func (l *ShoppingList) AddItem(item *BaseItem, quantity int) *ShoppingListItem {
	if quantity < 1 {
		quantity = DefaultItemQuantity
	}
	sli := &ShoppingListItem{
		ShoppingListID: l.ShoppingListID,
		Quantity:       quantity,
		BaseItem:       item,
	}
	if item != nil {
		sli.BaseItemID = item.BaseItemID
	}
	l.Items = append(l.Items, sli)
	return sli
}

// ShoppingListItem is one base item on one list. Its purchased flag belongs to
// that list only.
type ShoppingListItem struct {
	ShoppingListItemID int64
	ShoppingListID     int64
	BaseItemID         int64
	Quantity           int
	IsPurchased        bool

	BaseItem *BaseItem
}
