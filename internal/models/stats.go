package models

import "github.com/shopspring/decimal"

// Stats is the derived aggregate view over a user's transaction collection.
// It is recomputed from scratch on every read and never stored; any mutation
// of the collection invalidates a previously computed Stats value.
type Stats struct {
	TotalIncome   decimal.Decimal            `json:"total_income"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	Balance       decimal.Decimal            `json:"balance"`
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
}

// NewEmptyStats returns the all-zero stats produced for an empty collection
func NewEmptyStats() *Stats {
	return &Stats{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Balance:       decimal.Zero,
		ByCategory:    map[string]decimal.Decimal{},
	}
}

// Snapshot is the refreshed view of a user's data after a confirmed store
// round trip: the full ordered collection plus the stats derived from it.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Stats        *Stats        `json:"stats"`
}
