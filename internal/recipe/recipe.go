package recipe

import "mealmode/internal/ingredient"

// RecipeIngredient is one line of a recipe: a quantity of an ingredient,
// expressed in the ingredient's own unit. Ingredient is resolved from the
// catalog at load time and may be nil when the catalog is mid-refresh.
type RecipeIngredient struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes,omitempty"`

	Ingredient *ingredient.Ingredient `json:"-"`
}

// Recipe is a stored recipe. Servings is the base yield the ingredient
// quantities were authored for.
type Recipe struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Servings    int                `json:"servings"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []string           `json:"steps,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	PrepTime    string             `json:"prep_time,omitempty"`
}

// BaseServings normalizes the base yield for scaling math. Recipes are
// expected to have servings >= 1; anything else is treated as 1.
func (r *Recipe) BaseServings() float64 {
	if r.Servings < 1 {
		return 1
	}
	return float64(r.Servings)
}

// ResolveIngredients attaches catalog entries to the recipe's ingredient
// lines. Lines whose ingredient is missing from the catalog are left
// unresolved and contribute nothing to aggregations.
func (r *Recipe) ResolveIngredients(catalog map[int64]*ingredient.Ingredient) {
	for i := range r.Ingredients {
		r.Ingredients[i].Ingredient = catalog[r.Ingredients[i].IngredientID]
	}
}
