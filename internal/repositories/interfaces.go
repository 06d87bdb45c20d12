package repositories

import (
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryInterface is the store collaborator for transactions.
// Every operation is keyed by the owning user; the store is the authority on
// ownership checks.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByUserID(userID uuid.UUID) ([]models.Transaction, error)
	UpdateOwned(id, userID uuid.UUID, description string, amount decimal.Decimal, transactionType, category string) (*models.Transaction, error)
	DeleteOwned(id, userID uuid.UUID) error
	CountByUserID(userID uuid.UUID) (int64, error)
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	UpdateFailedLoginAttempts(user *models.User) error
	UpdateLastLogin(userID uuid.UUID) error
}
