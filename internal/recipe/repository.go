package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	recipedb "mealmode/internal/recipe/db"
)

// Repository is a database-backed repository for recipes.
type Repository struct {
	queries *recipedb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: recipedb.New(d),
		db:      d,
	}
}

// Save inserts or updates a recipe in the database.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe to JSON: %w", err)
	}

	return r.queries.UpsertRecipe(ctx, recipedb.UpsertRecipeParams{
		ID:        rec.ID,
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	})
}

// Get retrieves a recipe by its ID. Returns nil, nil when not found.
func (r *Repository) Get(ctx context.Context, id int64) (*Recipe, error) {
	row, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	return &rec, nil
}

// GetByIDs retrieves multiple recipes by their IDs. Missing IDs are simply
// absent from the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]Recipe, error) {
	rows, err := r.queries.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by IDs: %w", err)
	}

	var recipes []Recipe
	for _, row := range rows {
		var rec Recipe
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			log.Printf("Warning: failed to unmarshal recipe JSON for ID %d: %v", row.ID, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// List retrieves all recipes.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.queries.ListAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	var recipes []Recipe
	for _, row := range rows {
		var rec Recipe
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			log.Printf("Warning: failed to unmarshal recipe JSON for ID %d: %v", row.ID, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}
