package planner

import "time"

// Day is one column of the weekly plan grid.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Slot is one row of the weekly plan grid.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
)

// Days lists the plan columns in week order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Slots lists the plan rows in meal order.
func Slots() []Slot {
	return []Slot{Breakfast, Lunch, Dinner}
}

// Entry places a recipe into one (day, slot) cell of the plan. Servings is
// how many servings the user intends to eat there, independent of the
// recipe's base yield.
type Entry struct {
	RecipeID int64   `json:"recipe_id"`
	Day      Day     `json:"day"`
	Slot     Slot    `json:"slot"`
	Servings float64 `json:"servings"`
}

// WeekPlan is a 7x3 grid of at most one entry per cell.
type WeekPlan struct {
	WeekStart time.Time `json:"week_start"`
	Entries   []Entry   `json:"entries"`
}

// At returns the entry at the given cell, or nil when the cell is empty.
func (p *WeekPlan) At(day Day, slot Slot) *Entry {
	for i := range p.Entries {
		if p.Entries[i].Day == day && p.Entries[i].Slot == slot {
			return &p.Entries[i]
		}
	}
	return nil
}

// Set places an entry, replacing whatever occupied its cell.
func (p *WeekPlan) Set(e Entry) {
	for i := range p.Entries {
		if p.Entries[i].Day == e.Day && p.Entries[i].Slot == e.Slot {
			p.Entries[i] = e
			return
		}
	}
	p.Entries = append(p.Entries, e)
}

// Remove clears a cell. Removing an empty cell is a no-op.
func (p *WeekPlan) Remove(day Day, slot Slot) {
	for i := range p.Entries {
		if p.Entries[i].Day == day && p.Entries[i].Slot == slot {
			p.Entries = append(p.Entries[:i], p.Entries[i+1:]...)
			return
		}
	}
}

// GetNextMonday returns the Monday strictly after t, at midnight UTC.
func GetNextMonday(t time.Time) time.Time {
	t = t.UTC()
	daysAhead := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	next := t.AddDate(0, 0, daysAhead)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
}
