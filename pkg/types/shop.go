package types

// Shop is a store with aisles. Its catalog is the union of the base items
// stocked across its aisles.
type Shop struct {
	ShopID int64
	Name   string

	Aisles []*Aisle
}

// CreateAisle returns a new unsaved aisle belonging to the shop and appends it
// to the shop's aisles.
func (s *Shop) CreateAisle(name string) *Aisle {
	a := &Aisle{ShopID: s.ShopID, Name: name}
	s.Aisles = append(s.Aisles, a)
	return a
}

// Aisle is a location inside exactly one Shop where base items are stocked.
type Aisle struct {
	AisleID int64
	ShopID  int64
	Name    string

	BaseItems []*BaseItem
}

// AddItem stocks item in the aisle. Adding an item already present is a no-op.
func (a *Aisle) AddItem(item *BaseItem) {
	for _, existing := range a.BaseItems {
		if existing == item || (item.BaseItemID != 0 && existing.BaseItemID == item.BaseItemID) {
			return
		}
	}
	a.BaseItems = append(a.BaseItems, item)
}

// AisleItem is a row of the aisles_items join table. The pair is the key.
type AisleItem struct {
	AisleID    int64
	BaseItemID int64
}
