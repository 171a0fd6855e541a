package types

// BaseItem is a generic grocery item such as "Garlic", independent of any
// recipe quantity. Ingredients, aisles and shopping-list items refer to it.
type BaseItem struct {
	BaseItemID int64
	Name       string
}

// NewBaseItem returns an unsaved base item.
func NewBaseItem(name string) *BaseItem {
	return &BaseItem{Name: name}
}
