package services

import (
	"testing"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeAmount(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		expected     string
		expectedType string
		wantErr      bool
	}{
		{"positive integer", "100", "100", models.TransactionTypeIncome, false},
		{"negative integer", "-100", "-100", models.TransactionTypeExpense, false},
		{"two decimals kept", "42.75", "42.75", models.TransactionTypeIncome, false},
		{"excess precision rounded", "10.004", "10", models.TransactionTypeIncome, false},
		{"half cent rounds away from zero", "10.005", "10.01", models.TransactionTypeIncome, false},
		{"negative half cent rounds away from zero", "-10.005", "-10.01", models.TransactionTypeExpense, false},
		{"surrounding whitespace", "  25.50  ", "25.5", models.TransactionTypeIncome, false},
		{"at maximum", "1000000", "1000000", models.TransactionTypeIncome, false},
		{"zero", "0", "", "", true},
		{"negative zero", "-0", "", "", true},
		{"zero with decimals", "0.00", "", "", true},
		{"above maximum", "1000000.01", "", "", true},
		{"not a number", "abc", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, transactionType, err := CanonicalizeAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", amount, tt.expected)
			assert.Equal(t, tt.expectedType, transactionType)
		})
	}
}

func TestCanonicalizeAmount_NoBinaryFloatDrift(t *testing.T) {
	a, _, err := CanonicalizeAmount("0.1")
	require.NoError(t, err)
	b, _, err := CanonicalizeAmount("0.2")
	require.NoError(t, err)

	assert.True(t, a.Add(b).Equal(decimal.RequireFromString("0.3")))
}
