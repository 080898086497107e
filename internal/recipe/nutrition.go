package recipe

import "mealmode/internal/ingredient"

// NutritionFacts is a fully populated set of nutrition values. Unlike
// ingredient.NutritionStats there are no optional fields: aggregation is the
// boundary where unknown inputs become definite numbers, with unknown
// contributing zero.
type NutritionFacts struct {
	Kcal                   float64 `json:"kcal"`
	FatSaturatedGrams      float64 `json:"fat_saturated_grams"`
	FatTransGrams          float64 `json:"fat_trans_grams"`
	CarbohydrateFiberGrams float64 `json:"carbohydrate_fiber_grams"`
	CarbohydrateSugarGrams float64 `json:"carbohydrate_sugar_grams"`
	ProteinGrams           float64 `json:"protein_grams"`
	CholesterolGrams       float64 `json:"cholesterol_grams"`
	SodiumMilligrams       float64 `json:"sodium_milligrams"`
	PotassiumMilligrams    float64 `json:"potassium_milligrams"`
	CalciumMilligrams      float64 `json:"calcium_milligrams"`
	IronMilligrams         float64 `json:"iron_milligrams"`
	VitaminAMilligrams     float64 `json:"vitamin_a_milligrams"`
	VitaminCMilligrams     float64 `json:"vitamin_c_milligrams"`
	VitaminDMilligrams     float64 `json:"vitamin_d_milligrams"`
}

// NutritionSummary is the aggregated nutrition of one recipe.
type NutritionSummary struct {
	Total      NutritionFacts `json:"total"`
	PerServing NutritionFacts `json:"per_serving"`
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// add accumulates mult units worth of per-unit stats into the facts.
func (f *NutritionFacts) add(s *ingredient.NutritionStats, mult float64) {
	f.Kcal += orZero(s.KcalPerUnit) * mult
	f.FatSaturatedGrams += orZero(s.FatSaturatedGramsPerUnit) * mult
	f.FatTransGrams += orZero(s.FatTransGramsPerUnit) * mult
	f.CarbohydrateFiberGrams += orZero(s.CarbohydrateFiberGramsPerUnit) * mult
	f.CarbohydrateSugarGrams += orZero(s.CarbohydrateSugarGramsPerUnit) * mult
	f.ProteinGrams += orZero(s.ProteinGramsPerUnit) * mult
	f.CholesterolGrams += orZero(s.CholesterolGramsPerUnit) * mult
	f.SodiumMilligrams += orZero(s.SodiumMilligramsPerUnit) * mult
	f.PotassiumMilligrams += orZero(s.PotassiumMilligramsPerUnit) * mult
	f.CalciumMilligrams += orZero(s.CalciumMilligramsPerUnit) * mult
	f.IronMilligrams += orZero(s.IronMilligramsPerUnit) * mult
	f.VitaminAMilligrams += orZero(s.VitaminAMilligramsPerUnit) * mult
	f.VitaminCMilligrams += orZero(s.VitaminCMilligramsPerUnit) * mult
	f.VitaminDMilligrams += orZero(s.VitaminDMilligramsPerUnit) * mult
}

func (f *NutritionFacts) scale(div float64) NutritionFacts {
	return NutritionFacts{
		Kcal:                   f.Kcal / div,
		FatSaturatedGrams:      f.FatSaturatedGrams / div,
		FatTransGrams:          f.FatTransGrams / div,
		CarbohydrateFiberGrams: f.CarbohydrateFiberGrams / div,
		CarbohydrateSugarGrams: f.CarbohydrateSugarGrams / div,
		ProteinGrams:           f.ProteinGrams / div,
		CholesterolGrams:       f.CholesterolGrams / div,
		SodiumMilligrams:       f.SodiumMilligrams / div,
		PotassiumMilligrams:    f.PotassiumMilligrams / div,
		CalciumMilligrams:      f.CalciumMilligrams / div,
		IronMilligrams:         f.IronMilligrams / div,
		VitaminAMilligrams:     f.VitaminAMilligrams / div,
		VitaminCMilligrams:     f.VitaminCMilligrams / div,
		VitaminDMilligrams:     f.VitaminDMilligrams / div,
	}
}

// AggregateNutrition sums the per-unit nutrition stats of a recipe's
// resolved ingredients and derives the per-serving values. Unresolved
// ingredients and missing stats contribute zero; the output is a pure
// function of the recipe and never fails.
func AggregateNutrition(rec Recipe) NutritionSummary {
	var total NutritionFacts
	for _, ri := range rec.Ingredients {
		if ri.Ingredient == nil || ri.Ingredient.NutritionStats == nil {
			continue
		}
		total.add(ri.Ingredient.NutritionStats, ri.Quantity)
	}
	return NutritionSummary{
		Total:      total,
		PerServing: total.scale(rec.BaseServings()),
	}
}
