package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionNotOwned is returned when an id does not belong to the
	// calling user. Deliberately indistinguishable from a missing row so the
	// caller learns nothing about other users' data.
	ErrTransactionNotOwned = errors.New("transaction does not belong to this user")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	if err := r.db.First(transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetByUserID retrieves the full transaction collection for a user, newest
// first
func (r *transactionRepository) GetByUserID(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// UpdateOwned replaces the mutable fields of a transaction if and only if it
// belongs to the given user. ID, user and creation timestamp are immutable.
func (r *transactionRepository) UpdateOwned(id, userID uuid.UUID, description string, amount decimal.Decimal, transactionType, category string) (*models.Transaction, error) {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"description": description,
			"amount":      amount,
			"type":        transactionType,
			"category":    category,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransactionNotOwned
	}

	return r.GetByID(id)
}

// DeleteOwned removes a transaction if and only if it belongs to the given
// user
func (r *transactionRepository) DeleteOwned(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotOwned
	}
	return nil
}

// CountByUserID returns the number of transactions a user owns
func (r *transactionRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
