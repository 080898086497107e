package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"mealmode/internal/app"
	"mealmode/internal/config"
	"mealmode/internal/planner"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "shopping-list":
		listCmd := flag.NewFlagSet("shopping-list", flag.ExitOnError)
		week := listCmd.String("week", "", "Week start date (YYYY-MM-DD), defaults to the current week's Monday")
		listCmd.Parse(os.Args[2:])

		weekStart, err := resolveWeek(*week)
		if err != nil {
			log.Fatalf("Invalid -week: %v", err)
		}
		view, err := application.WeeklyShoppingList(ctx, weekStart)
		if err != nil {
			log.Fatalf("Failed to build shopping list: %v", err)
		}
		printShoppingList(view)
	case "recipe":
		recipeCmd := flag.NewFlagSet("recipe", flag.ExitOnError)
		id := recipeCmd.Int64("id", 0, "Recipe ID")
		recipeCmd.Parse(os.Args[2:])

		summary, err := application.SummarizeRecipe(ctx, *id)
		if err != nil {
			log.Fatalf("Failed to summarize recipe: %v", err)
		}
		if summary == nil {
			log.Fatalf("Recipe %d not found", *id)
		}
		printRecipeSummary(summary)
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		week := planCmd.String("week", "", "Week start date (YYYY-MM-DD), defaults to the current week's Monday")
		planCmd.Parse(os.Args[2:])

		weekStart, err := resolveWeek(*week)
		if err != nil {
			log.Fatalf("Invalid -week: %v", err)
		}
		plan, err := application.Plans.GetByWeek(ctx, weekStart)
		if err != nil {
			log.Fatalf("Failed to load plan: %v", err)
		}
		printPlan(weekStart, plan)
	case "refresh-prices":
		if err := application.RefreshPrices(ctx); err != nil {
			log.Fatalf("Price refresh failed: %v", err)
		}
		fmt.Println("Market prices refreshed.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func resolveWeek(raw string) (time.Time, error) {
	if raw == "" {
		return planner.GetNextMonday(time.Now()).AddDate(0, 0, -7), nil
	}
	return time.Parse("2006-01-02", raw)
}

func printShoppingList(view *app.ShoppingListView) {
	if view.PlannedEntries == 0 {
		fmt.Printf("Nothing planned for the week of %s.\n", view.WeekStart.Format("2006-01-02"))
		return
	}
	if len(view.Items) == 0 {
		fmt.Println("Everything for this week is already on hand.")
		return
	}

	fmt.Printf("Shopping list for the week of %s:\n", view.WeekStart.Format("2006-01-02"))
	for _, item := range view.Items {
		mark := "[ ]"
		if item.Bought {
			mark = "[x]"
		}
		fmt.Printf("  %s %-30s %s\n", mark, item.Name, item.DisplayLabel)
	}
}

func printRecipeSummary(s *app.RecipeSummary) {
	fmt.Printf("%s (serves %d)\n", s.Recipe.Name, s.Recipe.Servings)

	costSuffix := ""
	if s.Cost.PartiallyUnknown {
		costSuffix = "?"
	}
	fmt.Printf("  Cost: %.2f total, %.2f/serving%s\n", s.Cost.Total, s.Cost.PerServing, costSuffix)

	per := s.Nutrition.PerServing
	fmt.Printf("  Per serving: %.0f kcal, %.1fg protein, %.1fg sugar, %.1fg fiber, %.1fg sat. fat\n",
		per.Kcal, per.ProteinGrams, per.CarbohydrateSugarGrams, per.CarbohydrateFiberGrams, per.FatSaturatedGrams)
}

func printPlan(weekStart time.Time, plan *planner.WeekPlan) {
	if plan == nil || len(plan.Entries) == 0 {
		fmt.Printf("Nothing planned for the week of %s.\n", weekStart.Format("2006-01-02"))
		return
	}
	fmt.Printf("Meal plan for the week of %s:\n", weekStart.Format("2006-01-02"))
	for _, day := range planner.Days() {
		for _, slot := range planner.Slots() {
			if entry := plan.At(day, slot); entry != nil {
				fmt.Printf("  %-9s %-9s recipe #%d (%g servings)\n", day, slot, entry.RecipeID, entry.Servings)
			}
		}
	}
}

func printUsage() {
	fmt.Println("Usage: mealmode <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  shopping-list    Build the consolidated buy-list for a week's plan")
	fmt.Println("  recipe           Show a recipe's cost and nutrition summary")
	fmt.Println("  plan             Show a week's meal plan")
	fmt.Println("  refresh-prices   Re-scrape cached market prices for the catalog")
}
