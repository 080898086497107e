package recipe

// CostSummary is the aggregated cost of one recipe. PartiallyUnknown is
// advisory display metadata: true when at least one ingredient had no
// resolvable price. Unknown prices still contribute zero to the totals so
// the flag never changes which recipes look cheap.
type CostSummary struct {
	Total            float64 `json:"cost_total"`
	PerServing       float64 `json:"cost_per_serving"`
	PartiallyUnknown bool    `json:"cost_partially_unknown"`
}

// AggregateCost sums quantity * unit cost over a recipe's resolved
// ingredients. Unit cost resolution order: scraped market price, manual
// estimate, else zero with the advisory flag set. A non-positive servings
// count yields a per-serving cost of zero rather than dividing by it.
func AggregateCost(rec Recipe) CostSummary {
	var sum CostSummary
	for _, ri := range rec.Ingredients {
		if ri.Ingredient == nil {
			sum.PartiallyUnknown = true
			continue
		}
		unitCost, known := ri.Ingredient.UnitCost()
		if !known {
			sum.PartiallyUnknown = true
		}
		sum.Total += ri.Quantity * unitCost
	}
	if rec.Servings > 0 {
		sum.PerServing = sum.Total / float64(rec.Servings)
	}
	return sum
}
