package shopping

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mealmode/internal/planner"
)

// ListID derives a stable identity for the shopping list implied by a set of
// plan entries. The identity is a function of the multiset of
// (recipeID, servings) pairs only: day and slot placement is deliberately
// excluded, so two plans with the same recipes and servings share one
// checklist. Entries are sorted before hashing, making the result
// order-independent. The hash is a 31-multiplier rolling hash over the
// joined payload; it is a UI-scoped cache key, not a security fingerprint.
func ListID(entries []planner.Entry) string {
	pairs := make([]planner.Entry, len(entries))
	copy(pairs, entries)
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].RecipeID != pairs[j].RecipeID {
			return pairs[i].RecipeID < pairs[j].RecipeID
		}
		return pairs[i].Servings < pairs[j].Servings
	})

	parts := make([]string, 0, len(pairs))
	for _, e := range pairs {
		parts = append(parts, strconv.FormatInt(e.RecipeID, 10)+":"+formatNumber(e.Servings))
	}
	payload := strings.Join(parts, "|")

	var h int32
	for _, b := range []byte(payload) {
		h = h*31 + int32(b)
	}
	return fmt.Sprintf("shopping_%d", h)
}

// ItemKey uniquely identifies a buy-list line within one list identity.
// Quantity is part of the key on purpose: a changed required quantity is a
// different shopping requirement, so its previous bought mark does not
// carry over.
func ItemKey(item Item) string {
	return fmt.Sprintf("%d_%s_%s", item.IngredientID, formatNumber(item.Quantity), item.Unit)
}

// formatNumber renders a float in its shortest exact form ("4", "1.3").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
