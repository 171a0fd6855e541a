package store

import (
	"fmt"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// seedIngredient describes one line of the sample recipe.
type seedIngredient struct {
	item        string
	quantity    float64
	units       string
	preparation string
}

// SampleRecipeName is the name of the recipe inserted by Seed.
const SampleRecipeName = "Open kibbeh"

var sampleIngredients = []seedIngredient{
	{"Bulgar Wheat", 125, "g", ""},
	{"Olive Oil", 90, "mL", ""},
	{"Garlic", 2, "cloves", "crushed"},
	{"Onion", 2, "", "finely chopped"},
	{"Green Chilli", 2, "", "finely chopped"},
	{"Minced Lamb", 350, "g", ""},
	{"Allspice", 1, "tsp", "ground"},
	{"Cinnamon", 1, "tsp", "ground"},
	{"Coriander", 1, "tsp", "ground"},
	{"Pine Nuts", 60, "g", ""},
	{"Parsley", 3, "tbsp", "roughly chopped"},
	{"Self-raising flour", 2, "tbsp", ""},
	{"Tahini", 50, "g", ""},
	{"Lemon", 2, "tsp", "juiced"},
	{"Sumac", 1, "tsp", "ground"},
}

// Seed inserts the sample recipe with its base items and reports whether it
// was created. When a recipe with the sample name already exists it is
// returned unchanged, so Seed may run more than once.
func Seed(tx *Tx) (*types.Recipe, bool, error) {
	existing, err := tx.Recipes().Query(NameContains(SampleRecipeName)).All()
	if err != nil {
		return nil, false, err
	}
	for _, r := range existing {
		if r.Name == SampleRecipeName {
			return r, false, nil
		}
	}

	r := types.NewRecipe(SampleRecipeName)
	r.PreparationTime = 60
	r.CookingTime = 45
	r.Serves = 6

	items := tx.BaseItems()
	for _, si := range sampleIngredients {
		item, err := items.FindOrCreate(si.item)
		if err != nil {
			return nil, false, fmt.Errorf("seeding base item %q: %w", si.item, err)
		}
		r.AddIngredient(item, si.quantity, si.units, si.preparation)
	}
	if err := tx.Recipes().Create(r); err != nil {
		return nil, false, fmt.Errorf("seeding recipe: %w", err)
	}
	return r, true, nil
}
