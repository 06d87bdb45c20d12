package services

import (
	"fintrack/internal/models"
	"fintrack/internal/validation"

	"github.com/shopspring/decimal"
)

// CanonicalizeAmount turns a raw amount string into its canonical stored form:
// a two-decimal fixed-point value plus the transaction type derived from its
// sign. This is the only path from user input to a stored amount.
func CanonicalizeAmount(raw string) (decimal.Decimal, string, error) {
	amount, err := validation.ValidateAmount(raw)
	if err != nil {
		return decimal.Zero, "", err
	}

	return amount, models.DeriveTransactionType(amount), nil
}
