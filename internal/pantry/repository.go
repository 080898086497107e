package pantry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pantrydb "mealmode/internal/pantry/db"
)

// Repository is a database-backed repository for on-hand inventory.
type Repository struct {
	queries *pantrydb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: pantrydb.New(d),
		db:      d,
	}
}

// Add inserts a new on-hand record and returns it with its assigned ID.
func (r *Repository) Add(ctx context.Context, oh OnHand) (OnHand, error) {
	id, err := r.queries.InsertOnHand(ctx, pantrydb.InsertOnHandParams{
		IngredientID: oh.IngredientID,
		Quantity:     oh.Quantity,
		Notes:        oh.Notes,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return OnHand{}, fmt.Errorf("failed to insert on-hand record: %w", err)
	}
	oh.ID = id
	return oh, nil
}

// List retrieves the full on-hand snapshot.
func (r *Repository) List(ctx context.Context) ([]OnHand, error) {
	rows, err := r.queries.ListOnHand(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list on-hand records: %w", err)
	}

	var out []OnHand
	for _, row := range rows {
		out = append(out, OnHand{
			ID:           row.ID,
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
			Notes:        row.Notes,
		})
	}
	return out, nil
}

// SetQuantity updates the quantity of an existing record.
func (r *Repository) SetQuantity(ctx context.Context, id int64, quantity float64) error {
	return r.queries.UpdateOnHandQuantity(ctx, pantrydb.UpdateOnHandQuantityParams{
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
}

// Delete removes an on-hand record.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.queries.DeleteOnHand(ctx, id)
}
