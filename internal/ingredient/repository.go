package ingredient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	ingredientdb "mealmode/internal/ingredient/db"
)

// Repository is a database-backed repository for the ingredient catalog.
type Repository struct {
	queries *ingredientdb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: ingredientdb.New(d),
		db:      d,
	}
}

// Save inserts or updates an ingredient in the database.
func (r *Repository) Save(ctx context.Context, ing Ingredient) error {
	data, err := json.Marshal(ing)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredient to JSON: %w", err)
	}

	return r.queries.UpsertIngredient(ctx, ingredientdb.UpsertIngredientParams{
		ID:        ing.ID,
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	})
}

// Get retrieves an ingredient by its ID. Returns nil, nil when not found.
func (r *Repository) Get(ctx context.Context, id int64) (*Ingredient, error) {
	row, err := r.queries.GetIngredientByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}

	var ing Ingredient
	if err := json.Unmarshal([]byte(row.Data), &ing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredient JSON: %w", err)
	}
	return &ing, nil
}

// List retrieves the full ingredient catalog.
func (r *Repository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.queries.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	var out []Ingredient
	for _, row := range rows {
		var ing Ingredient
		if err := json.Unmarshal([]byte(row.Data), &ing); err != nil {
			log.Printf("Warning: failed to unmarshal ingredient JSON for ID %d: %v", row.ID, err)
			continue
		}
		out = append(out, ing)
	}
	return out, nil
}

// GetByIDs retrieves multiple ingredients keyed by ID.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*Ingredient, error) {
	rows, err := r.queries.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients by IDs: %w", err)
	}

	out := make(map[int64]*Ingredient, len(rows))
	for _, row := range rows {
		var ing Ingredient
		if err := json.Unmarshal([]byte(row.Data), &ing); err != nil {
			log.Printf("Warning: failed to unmarshal ingredient JSON for ID %d: %v", row.ID, err)
			continue
		}
		out[ing.ID] = &ing
	}
	return out, nil
}

// Count returns the number of ingredients in the catalog.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountIngredients(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return int(count), nil
}
