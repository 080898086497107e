package pantry

// OnHand records a quantity of an ingredient the user already possesses,
// in the ingredient's own unit. An ingredient may appear in several records;
// they are merged additively when netting a shopping list.
type OnHand struct {
	ID           int64   `json:"id"`
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes,omitempty"`
}
