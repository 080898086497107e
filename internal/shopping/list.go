package shopping

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mealmode/internal/ingredient"
	"mealmode/internal/pantry"
	"mealmode/internal/planner"
	"mealmode/internal/recipe"
)

// Item is one line of the consolidated buy-list: the net amount of an
// ingredient still needed after subtracting on-hand inventory. Quantity is
// always positive; fully covered ingredients are dropped, not shown as zero.
type Item struct {
	IngredientID int64           `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     float64         `json:"quantity"`
	Unit         ingredient.Unit `json:"unit"`
	DisplayLabel string          `json:"display_label"`
}

// FormatQuantity renders a quantity for display in its unit family:
// sub-kilogram masses in whole grams, everything else with a unit suffix
// (e.g. 0.4 kg -> "400g", 1.5 L -> "1.50 L", 3 pc -> "3 pc").
func FormatQuantity(quantity float64, unit ingredient.Unit) string {
	switch unit {
	case ingredient.UnitKilogram:
		grams := quantity * 1000
		if grams >= 1000 {
			return fmt.Sprintf("%.1f kg", quantity)
		}
		return fmt.Sprintf("%dg", int(math.Round(grams)))
	case ingredient.UnitLiter:
		return fmt.Sprintf("%.2f L", quantity)
	default:
		return fmt.Sprintf("%d pc", int(math.Round(quantity)))
	}
}

type accumulated struct {
	quantity float64
	name     string
	unit     ingredient.Unit
}

// Build consolidates the ingredient requirements of a week's plan entries
// into a sorted buy-list, net of on-hand inventory.
//
// Every recipe instance in the plan is scaled by plannedServings over the
// recipe's base servings, requirements for the same ingredient are merged
// across recipes, on-hand records are merged additively per ingredient, and
// what remains after max(0, required - onHand) survives. Entries referencing
// a recipe missing from the catalog are skipped; the catalog may be
// mid-refresh and a dangling reference must not fail the build.
func Build(entries []planner.Entry, recipes []recipe.Recipe, onHand []pantry.OnHand) []Item {
	byID := make(map[int64]int64, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = int64(i)
	}

	required := make(map[int64]*accumulated)
	for _, entry := range entries {
		idx, ok := byID[entry.RecipeID]
		if !ok {
			continue
		}
		rec := &recipes[idx]
		scale := entry.Servings / rec.BaseServings()

		for _, ri := range rec.Ingredients {
			ing := ri.Ingredient
			if ing == nil {
				continue
			}
			q := ri.Quantity * scale
			if acc, ok := required[ing.ID]; ok {
				acc.quantity += q
			} else {
				required[ing.ID] = &accumulated{quantity: q, name: ing.Name, unit: ing.Unit}
			}
		}
	}

	onHandByID := make(map[int64]float64)
	for _, oh := range onHand {
		if oh.Quantity > 0 {
			onHandByID[oh.IngredientID] += oh.Quantity
		}
	}

	var items []Item
	for id, acc := range required {
		toBuy := math.Max(0, acc.quantity-onHandByID[id])
		if toBuy <= 0 {
			continue
		}
		items = append(items, Item{
			IngredientID: id,
			Name:         acc.name,
			Quantity:     toBuy,
			Unit:         acc.unit,
			DisplayLabel: FormatQuantity(toBuy, acc.unit),
		})
	}

	c := collate.New(language.English)
	sort.Slice(items, func(i, j int) bool {
		return c.CompareString(items[i].Name, items[j].Name) < 0
	})
	return items
}
