package types

// Dict is the plain key/value shape returned to API clients. Values are
// JSON-compatible: strings, numbers, booleans, nil, nested Dicts and slices,
// time.Time and Date. encoding/json writes the keys in sorted order.
type Dict map[string]any

// Dicter is implemented by every entity with a full representation.
type Dicter interface {
	ToDict() Dict
}

// ToDict returns the full recipe including every ingredient in full.
func (r *Recipe) ToDict() Dict {
	ingredients := make([]Dict, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ing.ToDict())
	}
	return Dict{
		"recipe_id":        r.RecipeID,
		"name":             r.Name,
		"instructions":     r.Instructions,
		"preparation_time": r.PreparationTime,
		"cooking_time":     r.CookingTime,
		"serves":           r.Serves,
		"_added_on":        r.AddedOn,
		"ingredients":      ingredients,
	}
}

// ToDictMin returns the recipe's id and name only. Parents listing recipes
// use this form so a recipe's ingredients are not embedded again.
func (r *Recipe) ToDictMin() Dict {
	return Dict{
		"recipe_id": r.RecipeID,
		"name":      r.Name,
	}
}

// ToDict returns the ingredient with the base item's name.
func (i *Ingredient) ToDict() Dict {
	var preparation any
	if i.Preparation != "" {
		preparation = i.Preparation
	}
	return Dict{
		"ingredient_id": i.IngredientID,
		"baseitem_id":   i.BaseItemID,
		"name":          i.Name(),
		"quantity":      i.Quantity,
		"units":         i.Units,
		"preparation":   preparation,
	}
}

// ToDict returns the base item's id and name.
func (b *BaseItem) ToDict() Dict {
	return Dict{
		"baseitem_id": b.BaseItemID,
		"name":        b.Name,
	}
}

// ToDictMin is the same as ToDict; a base item has no children.
func (b *BaseItem) ToDictMin() Dict {
	return b.ToDict()
}

// ToDict returns the shop with its aisles in minimal form.
func (s *Shop) ToDict() Dict {
	aisles := make([]Dict, 0, len(s.Aisles))
	for _, a := range s.Aisles {
		aisles = append(aisles, a.ToDictMin())
	}
	return Dict{
		"shop_id": s.ShopID,
		"name":    s.Name,
		"aisles":  aisles,
	}
}

// ToDictMin returns the shop's id and name only.
func (s *Shop) ToDictMin() Dict {
	return Dict{
		"shop_id": s.ShopID,
		"name":    s.Name,
	}
}

// ToDict returns the aisle with the base items it stocks.
func (a *Aisle) ToDict() Dict {
	items := make([]Dict, 0, len(a.BaseItems))
	for _, b := range a.BaseItems {
		items = append(items, b.ToDictMin())
	}
	return Dict{
		"aisle_id":  a.AisleID,
		"shop_id":   a.ShopID,
		"name":      a.Name,
		"baseitems": items,
	}
}

// ToDictMin returns the aisle's id and name only.
func (a *Aisle) ToDictMin() Dict {
	return Dict{
		"aisle_id": a.AisleID,
		"name":     a.Name,
	}
}

// ToDict returns the meal with its recipes in minimal form.
func (m *Meal) ToDict() Dict {
	recipes := make([]Dict, 0, len(m.Recipes))
	for _, r := range m.Recipes {
		recipes = append(recipes, r.ToDictMin())
	}
	return Dict{
		"meal_id":     m.MealID,
		"description": m.Description,
		"recipes":     recipes,
	}
}

// ToDictMin returns the meal's id and description only.
func (m *Meal) ToDictMin() Dict {
	return Dict{
		"meal_id":     m.MealID,
		"description": m.Description,
	}
}

// ToDict embeds the planned meal in minimal form, or null when not loaded.
func (p *Mealplan) ToDict() Dict {
	var meal any
	if p.Meal != nil {
		meal = p.Meal.ToDictMin()
	}
	return Dict{
		"mealplan_id": p.MealplanID,
		"meal_id":     p.MealID,
		"date":        p.Date,
		"meal":        meal,
	}
}

// ToDict returns the list with every item in full.
func (l *ShoppingList) ToDict() Dict {
	items := make([]Dict, 0, len(l.Items))
	for _, it := range l.Items {
		items = append(items, it.ToDict())
	}
	return Dict{
		"shoppinglist_id": l.ShoppingListID,
		"date":            l.Date,
		"items":           items,
	}
}

// ToDictMin returns the list's id and date without its items.
func (l *ShoppingList) ToDictMin() Dict {
	return Dict{
		"shoppinglist_id": l.ShoppingListID,
		"date":            l.Date,
	}
}

// ToDict returns the item with its base item's name.
func (i *ShoppingListItem) ToDict() Dict {
	var name string
	if i.BaseItem != nil {
		name = i.BaseItem.Name
	}
	return Dict{
		"shoppinglistitem_id": i.ShoppingListItemID,
		"shoppinglist_id":     i.ShoppingListID,
		"baseitem_id":         i.BaseItemID,
		"name":                name,
		"quantity":            i.Quantity,
		"is_purchased":        i.IsPurchased,
	}
}

// ToDict returns the user's id.
func (u *User) ToDict() Dict {
	return Dict{"user_id": u.UserID}
}
