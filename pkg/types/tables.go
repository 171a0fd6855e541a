package types

// Table names of the persisted schema.
const (
	TableRecipes           = "recipes"
	TableBaseItems         = "baseitems"
	TableIngredients       = "ingredients"
	TableShops             = "shops"
	TableAisles            = "aisles"
	TableAislesItems       = "aisles_items"
	TableMeals             = "meals"
	TableMealsRecipes      = "meals_recipes"
	TableMealplans         = "mealplans"
	TableShoppingLists     = "shoppinglists"
	TableShoppingListItems = "shoppinglistitems"
	TableUsers             = "users"
)

// StandardTableNames lists every table in dependency order (parents first).
var StandardTableNames = []string{
	TableBaseItems,
	TableMeals,
	TableRecipes,
	TableShoppingLists,
	TableShops,
	TableUsers,
	TableAisles,
	TableIngredients,
	TableMealplans,
	TableMealsRecipes,
	TableShoppingListItems,
	TableAislesItems,
}
