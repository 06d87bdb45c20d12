package services

import (
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregationError reports a transaction that violates the aggregation
// invariants: a stored zero amount or a type that disagrees with the amount
// sign. Such a row indicates corrupted data, not user input.
type AggregationError struct {
	TransactionID uuid.UUID
	Reason        string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed for transaction %s: %s", e.TransactionID, e.Reason)
}

// StatsService computes aggregate statistics over a transaction collection
type StatsService struct{}

// NewStatsService creates a new stats service
func NewStatsService() StatsServiceInterface {
	return &StatsService{}
}

// ComputeStats walks the collection once and accumulates income, expense and
// per-category totals. Expense totals and per-category sums use absolute
// values; balance keeps the sign. Totals are rounded to two decimal places at
// the end, never per element, so the result is independent of element order.
// Categories with no transactions never appear in the map.
func (ss *StatsService) ComputeStats(transactions []models.Transaction) (*models.Stats, error) {
	stats := models.NewEmptyStats()

	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := make(map[string]decimal.Decimal, len(transactions))

	for i := range transactions {
		t := &transactions[i]

		if t.Amount.IsZero() {
			return nil, &AggregationError{TransactionID: t.ID, Reason: "zero amount"}
		}

		if t.Type != models.DeriveTransactionType(t.Amount) {
			return nil, &AggregationError{
				TransactionID: t.ID,
				Reason:        fmt.Sprintf("type %q disagrees with amount sign", t.Type),
			}
		}

		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount.Abs())
		}

		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount.Abs())
	}

	stats.TotalIncome = income.Round(2)
	stats.TotalExpenses = expenses.Round(2)
	stats.Balance = income.Sub(expenses).Round(2)

	for category, total := range byCategory {
		stats.ByCategory[category] = total.Round(2)
	}

	return stats, nil
}
