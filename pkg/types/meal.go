package types

// Meal groups recipes served together, e.g. "Sunday lunch".
type Meal struct {
	MealID      int64
	Description string

	Recipes []*Recipe
}

// AddRecipe links recipe to the meal. Linking a recipe twice is a no-op.
func (m *Meal) AddRecipe(recipe *Recipe) {
	for _, existing := range m.Recipes {
		if existing == recipe || (recipe.RecipeID != 0 && existing.RecipeID == recipe.RecipeID) {
			return
		}
	}
	m.Recipes = append(m.Recipes, recipe)
}

// MealRecipe is a row of the meals_recipes join table. The pair is the key.
type MealRecipe struct {
	MealID   int64
	RecipeID int64
}

// Mealplan assigns a Meal to a calendar date.
type Mealplan struct {
	MealplanID int64
	MealID     int64
	Date       Date

	Meal *Meal
}
