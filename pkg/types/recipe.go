package types

import "time"

// Recipe is a named set of instructions that owns its Ingredients. Deleting a
// recipe deletes its ingredients.
type Recipe struct {
	RecipeID        int64
	Name            string
	Instructions    string
	PreparationTime int // minutes
	CookingTime     int // minutes
	Serves          int
	AddedOn         time.Time

	Ingredients []*Ingredient
}

// NewRecipe returns an unsaved recipe with the given name.
func NewRecipe(name string) *Recipe {
	return &Recipe{Name: name}
}

// AddIngredient records that the recipe needs quantity units of item, prepared
// as described, and appends the new Ingredient to the recipe. Any quantity is
// accepted. An empty preparation means none.
//
// The ingredient is persisted together with the recipe.
func (r *Recipe) AddIngredient(item *BaseItem, quantity float64, units, preparation string) *Ingredient {
	ing := &Ingredient{
		RecipeID:    r.RecipeID,
		Quantity:    quantity,
		Units:       units,
		Preparation: preparation,
		BaseItem:    item,
	}
	if item != nil {
		ing.BaseItemID = item.BaseItemID
	}
	r.Ingredients = append(r.Ingredients, ing)
	return ing
}

// BaseItems returns the distinct base items used by the recipe's ingredients,
// in ingredient order.
func (r *Recipe) BaseItems() []*BaseItem {
	seen := make(map[*BaseItem]bool, len(r.Ingredients))
	var items []*BaseItem
	for _, ing := range r.Ingredients {
		if ing.BaseItem == nil || seen[ing.BaseItem] {
			continue
		}
		seen[ing.BaseItem] = true
		items = append(items, ing.BaseItem)
	}
	return items
}

// Ingredient is the join between a Recipe and a BaseItem carrying the
// recipe-specific quantity, units and preparation.
type Ingredient struct {
	IngredientID int64
	RecipeID     int64
	BaseItemID   int64
	Quantity     float64
	Units        string
	Preparation  string // empty when not given; serialized as null

	BaseItem *BaseItem
}

// Name returns the name of the referenced base item, or "" when not loaded.
func (i *Ingredient) Name() string {
	if i.BaseItem == nil {
		return ""
	}
	return i.BaseItem.Name
}
