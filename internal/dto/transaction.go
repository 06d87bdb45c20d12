package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction Request DTOs
//
// Amounts arrive as raw strings: the canonicalization pipeline, not the JSON
// decoder, decides what is an acceptable monetary value.

// CreateTransactionRequest contains the raw fields for a new transaction
type CreateTransactionRequest struct {
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
}

// UpdateTransactionRequest contains the raw replacement fields for an
// existing transaction. Only description and amount are mutable.
type UpdateTransactionRequest struct {
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
}

// Transaction Response DTOs

// TransactionResponse is the wire shape of a single transaction
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatsResponse is the wire shape of the aggregated statistics
type StatsResponse struct {
	TotalIncome   decimal.Decimal            `json:"total_income"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	Balance       decimal.Decimal            `json:"balance"`
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
}

// SnapshotResponse carries the refreshed collection and stats returned after
// a confirmed mutation
type SnapshotResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Stats        StatsResponse         `json:"stats"`
}
