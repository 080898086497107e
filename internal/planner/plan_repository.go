package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mealmode/internal/planner/plan_db"
)

// PlanRepository is a database-backed repository for weekly meal plans,
// keyed by week start date.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// Save inserts or replaces the plan for its week.
func (r *PlanRepository) Save(ctx context.Context, plan WeekPlan) error {
	entries, err := json.Marshal(plan.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal plan entries: %w", err)
	}

	return r.queries.UpsertMealPlan(ctx, plan_db.UpsertMealPlanParams{
		WeekStart: plan.WeekStart.UTC(),
		Entries:   string(entries),
		UpdatedAt: time.Now().UTC(),
	})
}

// GetByWeek retrieves the plan for a week start date. Returns nil, nil when
// no plan exists for that week.
func (r *PlanRepository) GetByWeek(ctx context.Context, weekStart time.Time) (*WeekPlan, error) {
	row, err := r.queries.GetMealPlanByWeek(ctx, weekStart.UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meal plan by week: %w", err)
	}

	plan := WeekPlan{WeekStart: row.WeekStart}
	if err := json.Unmarshal([]byte(row.Entries), &plan.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan entries: %w", err)
	}
	return &plan, nil
}

// ListRecent retrieves up to limit plans, most recent week first.
func (r *PlanRepository) ListRecent(ctx context.Context, limit int) ([]WeekPlan, error) {
	rows, err := r.queries.ListMealPlans(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}

	var plans []WeekPlan
	for _, row := range rows {
		plan := WeekPlan{WeekStart: row.WeekStart}
		if err := json.Unmarshal([]byte(row.Entries), &plan.Entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan entries for week %s: %w", row.WeekStart.Format("2006-01-02"), err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// DeleteByWeek removes the plan for a week start date.
func (r *PlanRepository) DeleteByWeek(ctx context.Context, weekStart time.Time) error {
	return r.queries.DeleteMealPlanByWeek(ctx, weekStart.UTC())
}
