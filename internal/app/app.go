package app

import (
	"context"
	"fmt"
	"time"

	"mealmode/internal/config"
	"mealmode/internal/database"
	"mealmode/internal/ingredient"
	"mealmode/internal/pantry"
	"mealmode/internal/planner"
	"mealmode/internal/pricing"
	"mealmode/internal/recipe"
	"mealmode/internal/shopping"
	"mealmode/internal/storage"
)

// App wires the repositories, the aggregation engine and the checklist store
// together behind the use cases the CLI and the bot share.
type App struct {
	cfg *config.Config
	db  *database.DB

	Ingredients *ingredient.Repository
	Recipes     *recipe.Repository
	Plans       *planner.PlanRepository
	Pantry      *pantry.Repository
	Bought      shopping.BoughtStore
	Prices      *pricing.Service
}

// New initializes the database and all dependencies.
func New(cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bought, err := storage.NewBoughtFile(cfg.BoughtStatePath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize bought-state store: %w", err)
	}

	ingredients := ingredient.NewRepository(db.SQL)

	return &App{
		cfg:         cfg,
		db:          db,
		Ingredients: ingredients,
		Recipes:     recipe.NewRepository(db.SQL),
		Plans:       planner.NewPlanRepository(db.SQL),
		Pantry:      pantry.NewRepository(db.SQL),
		Bought:      bought,
		Prices:      pricing.NewService(ingredients, pricing.NewHTTPFetcher()),
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}

// ChecklistItem is one buy-list line with its persisted checked state.
type ChecklistItem struct {
	shopping.Item
	Key    string `json:"key"`
	Bought bool   `json:"bought"`
}

// ShoppingListView is the rendered checklist for one week. PlannedEntries
// lets the caller tell "nothing planned" apart from "planned but nothing to
// buy" (the builder itself does not distinguish them).
type ShoppingListView struct {
	ListID         string          `json:"list_id"`
	WeekStart      time.Time       `json:"week_start"`
	PlannedEntries int             `json:"planned_entries"`
	Items          []ChecklistItem `json:"items"`
}

// WeeklyShoppingList builds the consolidated buy-list for the week's plan
// and joins it with the persisted bought checklist.
func (a *App) WeeklyShoppingList(ctx context.Context, weekStart time.Time) (*ShoppingListView, error) {
	view := &ShoppingListView{WeekStart: weekStart}

	plan, err := a.Plans.GetByWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if plan == nil || len(plan.Entries) == 0 {
		view.ListID = shopping.ListID(nil)
		return view, nil
	}
	view.PlannedEntries = len(plan.Entries)

	recipeIDs := make([]int64, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		recipeIDs = append(recipeIDs, e.RecipeID)
	}
	recipes, err := a.loadResolvedRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	onHand, err := a.Pantry.List(ctx)
	if err != nil {
		return nil, err
	}

	items := shopping.Build(plan.Entries, recipes, onHand)
	view.ListID = shopping.ListID(plan.Entries)
	bought := a.Bought.Bought(view.ListID)

	for _, item := range items {
		key := shopping.ItemKey(item)
		view.Items = append(view.Items, ChecklistItem{
			Item:   item,
			Key:    key,
			Bought: bought[key],
		})
	}
	return view, nil
}

// RecipeSummary is a recipe with its aggregated cost and nutrition.
type RecipeSummary struct {
	Recipe    recipe.Recipe           `json:"recipe"`
	Cost      recipe.CostSummary      `json:"cost"`
	Nutrition recipe.NutritionSummary `json:"nutrition"`
}

// SummarizeRecipe loads a recipe with its catalog entries resolved and
// aggregates its cost and nutrition. Returns nil, nil when the recipe does
// not exist.
func (a *App) SummarizeRecipe(ctx context.Context, id int64) (*RecipeSummary, error) {
	recipes, err := a.loadResolvedRecipes(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}

	rec := recipes[0]
	return &RecipeSummary{
		Recipe:    rec,
		Cost:      recipe.AggregateCost(rec),
		Nutrition: recipe.AggregateNutrition(rec),
	}, nil
}

// SetBought toggles one checklist line for a list identity.
func (a *App) SetBought(listID, itemKey string, bought bool) error {
	return a.Bought.SetBought(listID, itemKey, bought)
}

// RefreshPrices re-scrapes cached market prices for the whole catalog.
func (a *App) RefreshPrices(ctx context.Context) error {
	return a.Prices.RefreshAll(ctx)
}

// loadResolvedRecipes fetches recipes and attaches their catalog
// ingredients.
func (a *App) loadResolvedRecipes(ctx context.Context, recipeIDs []int64) ([]recipe.Recipe, error) {
	recipes, err := a.Recipes.GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var ingredientIDs []int64
	for _, rec := range recipes {
		for _, ri := range rec.Ingredients {
			if !seen[ri.IngredientID] {
				seen[ri.IngredientID] = true
				ingredientIDs = append(ingredientIDs, ri.IngredientID)
			}
		}
	}
	if len(ingredientIDs) == 0 {
		return recipes, nil
	}

	catalog, err := a.Ingredients.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].ResolveIngredients(catalog)
	}
	return recipes, nil
}
