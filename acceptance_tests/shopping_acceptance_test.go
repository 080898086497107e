package acceptance_tests

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mealmode/internal/app"
	"mealmode/internal/config"
	"mealmode/internal/ingredient"
	"mealmode/internal/pantry"
	"mealmode/internal/planner"
	"mealmode/internal/recipe"
)

func ptr(v float64) *float64 { return &v }

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	// 1. Set up a temporary data directory
	tempDir := t.TempDir()
	cfg := &config.Config{
		DatabasePath:    filepath.Join(tempDir, "mealmode.db"),
		BoughtStatePath: filepath.Join(tempDir, "shopping_bought.json"),
	}

	// 2. Create the application instance (runs migrations)
	application, err := app.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	defer application.Close()

	// --- 3. Step 1: Seed the catalog ---
	t.Log("--- Step 1: Seeding Ingredients and Recipes ---")
	ingredients := []ingredient.Ingredient{
		{
			ID: 1, Name: "Chicken breast", Unit: ingredient.UnitKilogram,
			EstimatedCost: ptr(8.00),
			NutritionStats: &ingredient.NutritionStats{
				KcalPerUnit:         ptr(1650),
				ProteinGramsPerUnit: ptr(310),
			},
		},
		{
			ID: 2, Name: "Rice", Unit: ingredient.UnitKilogram,
			EstimatedCost: ptr(2.50),
			NutritionStats: &ingredient.NutritionStats{
				KcalPerUnit: ptr(3650),
			},
		},
		{ID: 3, Name: "Olive oil", Unit: ingredient.UnitLiter},
	}
	for _, ing := range ingredients {
		if err := application.Ingredients.Save(ctx, ing); err != nil {
			t.Fatalf("Failed to save ingredient %d: %v", ing.ID, err)
		}
	}

	curry := recipe.Recipe{
		ID: 10, Name: "Chicken Curry", Servings: 2,
		Ingredients: []recipe.RecipeIngredient{
			{IngredientID: 1, Quantity: 0.5},
			{IngredientID: 3, Quantity: 0.05},
		},
	}
	friedRice := recipe.Recipe{
		ID: 11, Name: "Fried Rice", Servings: 4,
		Ingredients: []recipe.RecipeIngredient{
			{IngredientID: 2, Quantity: 0.4},
			{IngredientID: 3, Quantity: 0.03},
		},
	}
	for _, rec := range []recipe.Recipe{curry, friedRice} {
		if err := application.Recipes.Save(ctx, rec); err != nil {
			t.Fatalf("Failed to save recipe %d: %v", rec.ID, err)
		}
	}

	// --- 4. Step 2: Recipe summary ---
	t.Log("--- Step 2: Summarizing a Recipe ---")
	summary, err := application.SummarizeRecipe(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to summarize recipe: %v", err)
	}
	if summary == nil {
		t.Fatal("Expected a summary for an existing recipe")
	}
	// 0.5 kg chicken at 8.00/kg; olive oil has no price at all.
	if summary.Cost.Total != 4.00 {
		t.Errorf("Expected total cost 4.00, got %v", summary.Cost.Total)
	}
	if !summary.Cost.PartiallyUnknown {
		t.Error("Expected the cost to be flagged partially unknown")
	}
	if summary.Nutrition.Total.Kcal != 825 {
		t.Errorf("Expected 825 kcal total, got %v", summary.Nutrition.Total.Kcal)
	}
	if summary.Nutrition.PerServing.Kcal != 412.5 {
		t.Errorf("Expected 412.5 kcal per serving, got %v", summary.Nutrition.PerServing.Kcal)
	}

	if missing, err := application.SummarizeRecipe(ctx, 999); err != nil || missing != nil {
		t.Errorf("Expected nil, nil for a missing recipe, got %v, %v", missing, err)
	}

	// --- 5. Step 3: Plan the week ---
	t.Log("--- Step 3: Planning the Week ---")
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	plan := planner.WeekPlan{WeekStart: weekStart}
	plan.Set(planner.Entry{RecipeID: 10, Day: planner.Monday, Slot: planner.Dinner, Servings: 2})
	plan.Set(planner.Entry{RecipeID: 11, Day: planner.Tuesday, Slot: planner.Lunch, Servings: 2})
	if err := application.Plans.Save(ctx, plan); err != nil {
		t.Fatalf("Failed to save plan: %v", err)
	}

	// Half the rice is already in the pantry.
	if _, err := application.Pantry.Add(ctx, pantry.OnHand{IngredientID: 2, Quantity: 0.1}); err != nil {
		t.Fatalf("Failed to add pantry record: %v", err)
	}

	// --- 6. Step 4: Build the shopping list ---
	t.Log("--- Step 4: Building the Shopping List ---")
	view, err := application.WeeklyShoppingList(ctx, weekStart)
	if err != nil {
		t.Fatalf("Failed to build shopping list: %v", err)
	}
	if view.PlannedEntries != 2 {
		t.Errorf("Expected 2 planned entries, got %d", view.PlannedEntries)
	}
	if len(view.Items) != 3 {
		t.Fatalf("Expected 3 items to buy, got %d: %+v", len(view.Items), view.Items)
	}

	// Sorted by name: chicken, olive oil, rice.
	chicken := view.Items[0]
	if chicken.Name != "Chicken breast" || chicken.Quantity != 0.5 {
		t.Errorf("Expected 0.5 kg of chicken first, got %+v", chicken)
	}
	rice := view.Items[2]
	// 0.4 kg at half the recipe's servings, minus 0.1 kg on hand.
	if rice.Name != "Rice" || rice.Quantity != 0.1 {
		t.Errorf("Expected 0.1 kg of rice, got %+v", rice)
	}
	if rice.DisplayLabel != "100g" {
		t.Errorf("Expected display label 100g, got %q", rice.DisplayLabel)
	}

	// --- 7. Step 5: Toggle a checklist line ---
	t.Log("--- Step 5: Toggling Bought State ---")
	if chicken.Bought {
		t.Error("Expected a fresh list to start unchecked")
	}
	if err := application.SetBought(view.ListID, chicken.Key, true); err != nil {
		t.Fatalf("Failed to set bought state: %v", err)
	}

	again, err := application.WeeklyShoppingList(ctx, weekStart)
	if err != nil {
		t.Fatalf("Failed to rebuild shopping list: %v", err)
	}
	if again.ListID != view.ListID {
		t.Errorf("Expected a stable list identity, got %q then %q", view.ListID, again.ListID)
	}
	if !again.Items[0].Bought {
		t.Error("Expected the chicken line to stay checked after a rebuild")
	}
	if again.Items[2].Bought {
		t.Error("Expected the rice line to stay unchecked")
	}

	// --- 8. Step 6: Changing the plan changes the list identity ---
	t.Log("--- Step 6: Plan Edit Resets the Checklist ---")
	plan.Set(planner.Entry{RecipeID: 10, Day: planner.Monday, Slot: planner.Dinner, Servings: 4})
	if err := application.Plans.Save(ctx, plan); err != nil {
		t.Fatalf("Failed to save edited plan: %v", err)
	}

	edited, err := application.WeeklyShoppingList(ctx, weekStart)
	if err != nil {
		t.Fatalf("Failed to rebuild shopping list: %v", err)
	}
	if edited.ListID == view.ListID {
		t.Error("Expected a different list identity after editing servings")
	}
	for _, item := range edited.Items {
		if item.Bought {
			t.Errorf("Expected the new list to start unchecked, got %+v", item)
		}
	}

	// --- 9. Step 7: Empty week ---
	t.Log("--- Step 7: Unplanned Week ---")
	empty, err := application.WeeklyShoppingList(ctx, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Failed to build shopping list for an empty week: %v", err)
	}
	if empty.PlannedEntries != 0 || len(empty.Items) != 0 {
		t.Errorf("Expected an empty view for an unplanned week, got %+v", empty)
	}
}
