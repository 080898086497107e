package ingredient

import "time"

// Unit is the fixed measurement family of an ingredient. Quantities for an
// ingredient are always expressed in its own unit; units are never mixed or
// converted between families.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitLiter    Unit = "L"
	UnitPiece    Unit = "pc"
)

// NutritionStats holds per-unit nutrition facts for an ingredient
// (e.g. x kcal per kg). A nil field means the value is unknown.
type NutritionStats struct {
	KcalPerUnit                   *float64 `json:"kcal_per_unit"`
	FatSaturatedGramsPerUnit      *float64 `json:"fat_saturated_grams_per_unit"`
	FatTransGramsPerUnit          *float64 `json:"fat_trans_grams_per_unit"`
	CarbohydrateFiberGramsPerUnit *float64 `json:"carbohydrate_fiber_grams_per_unit"`
	CarbohydrateSugarGramsPerUnit *float64 `json:"carbohydrate_sugar_grams_per_unit"`
	ProteinGramsPerUnit           *float64 `json:"protein_grams_per_unit"`
	CholesterolGramsPerUnit       *float64 `json:"cholesterol_grams_per_unit"`
	SodiumMilligramsPerUnit       *float64 `json:"sodium_milligrams_per_unit"`
	PotassiumMilligramsPerUnit    *float64 `json:"potassium_milligrams_per_unit"`
	CalciumMilligramsPerUnit      *float64 `json:"calcium_milligrams_per_unit"`
	IronMilligramsPerUnit         *float64 `json:"iron_milligrams_per_unit"`
	VitaminAMilligramsPerUnit     *float64 `json:"vitamin_a_milligrams_per_unit"`
	VitaminCMilligramsPerUnit     *float64 `json:"vitamin_c_milligrams_per_unit"`
	VitaminDMilligramsPerUnit     *float64 `json:"vitamin_d_milligrams_per_unit"`
}

// PriceSource is one product page a price can be scraped from. Quantity is the
// package size in the ingredient's unit, so CachedPrice is stored per unit.
type PriceSource struct {
	URL         string    `json:"url"`
	Quantity    float64   `json:"quantity"`
	CachedPrice *float64  `json:"cached_price,omitempty"`
	CachedError string    `json:"cached_error,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ingredient is one catalog entry. MarketPrice is filled by the price
// scraper; EstimatedCost is a manual fallback. Both are per one unit.
type Ingredient struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Unit           Unit            `json:"unit"`
	NutritionStats *NutritionStats `json:"nutrition_stats,omitempty"`
	MarketPrice    *float64        `json:"market_price,omitempty"`
	EstimatedCost  *float64        `json:"estimated_cost,omitempty"`
	PriceSources   []PriceSource   `json:"price_sources,omitempty"`
	MarketPriceAt  time.Time       `json:"market_price_at,omitempty"`
}

// UnitCost resolves the cost of one unit of the ingredient: a scraped market
// price wins over a manual estimate. The second return value reports whether
// any price was resolvable at all.
func (i *Ingredient) UnitCost() (float64, bool) {
	if i.MarketPrice != nil {
		return *i.MarketPrice, true
	}
	if i.EstimatedCost != nil {
		return *i.EstimatedCost, true
	}
	return 0, false
}
