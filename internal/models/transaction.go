package models

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	MaxDescriptionLength = 500
	MaxCategoryLength    = 50

	// Stored descriptions are markup-escaped; a 500-rune input can expand
	// up to 6x ("&quot;" per rune) before it reaches the model.
	maxStoredDescriptionLength = MaxDescriptionLength * 6
)

// MaxTransactionAmount is the largest magnitude a single transaction may carry
var MaxTransactionAmount = decimal.NewFromInt(1_000_000)

var (
	ErrZeroAmount          = errors.New("transaction amount cannot be zero")
	ErrAmountOutOfRange    = errors.New("transaction amount exceeds the allowed maximum")
	ErrTypeMismatch        = errors.New("transaction type does not match the amount sign")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrDescriptionRequired = errors.New("transaction description is required")
)

// Transaction is a single recorded income or expense event owned by a user.
// Amount is signed: positive for income, negative for expense. Type is
// derived from the sign and never set independently.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(10);not null" json:"type"`
	Category    string          `gorm:"type:varchar(50)" json:"category"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// DeriveTransactionType classifies a signed amount as income or expense.
// This is the single source of truth for the classification; no caller may
// re-derive or override it.
func DeriveTransactionType(amount decimal.Decimal) string {
	if amount.GreaterThan(decimal.Zero) {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Type == "" {
		t.Type = DeriveTransactionType(t.Amount)
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty struct; the repository validates the
	// fields it writes, so struct validation is skipped for those.
	if tx != nil && tx.Statement != nil && tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate enforces the transaction invariants: non-zero bounded amount,
// sign-derived type, non-empty bounded description.
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.Description == "" {
		return ErrDescriptionRequired
	}

	if utf8.RuneCountInString(t.Description) > maxStoredDescriptionLength {
		return errors.New("transaction description too long")
	}

	if t.Amount.IsZero() {
		return ErrZeroAmount
	}

	if t.Amount.Abs().GreaterThan(MaxTransactionAmount) {
		return ErrAmountOutOfRange
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidType
	}

	if t.Type != DeriveTransactionType(t.Amount) {
		return ErrTypeMismatch
	}

	if utf8.RuneCountInString(t.Category) > MaxCategoryLength {
		return errors.New("category too long")
	}

	return nil
}

// IsIncome returns true if the transaction is an income event
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense returns true if the transaction is an expense event
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
