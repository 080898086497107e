package shopping

// BoughtStore persists which buy-list lines the user has already checked
// off, scoped by list identity. Implementations must degrade a corrupted or
// missing document to an empty set rather than failing a load; the checklist
// is a convenience, never a reason the list cannot render.
type BoughtStore interface {
	// Bought returns the set of item keys marked bought for a list.
	Bought(listID string) map[string]bool

	// SetBought marks or unmarks one item key for a list. Marking an
	// already-marked key (or unmarking an absent one) is a no-op, so
	// toggles are idempotent.
	SetBought(listID, itemKey string, bought bool) error
}
