package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/sanitize"
	"fintrack/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotPermitted is returned when the session user tries to mutate a
	// transaction it does not own. Indistinguishable from the transaction
	// not existing.
	ErrNotPermitted = errors.New("operation not permitted on this transaction")

	// ErrStoreUnavailable is returned when the store cannot confirm an
	// operation. The local view is never updated on this path.
	ErrStoreUnavailable = errors.New("transaction store unavailable")
)

// transactionRules are the field rules applied to every create and update
var transactionRules = map[string]validation.FieldRule{
	"description": validation.DescriptionRule,
	"amount":      validation.AmountRule,
}

// TransactionService runs the transaction pipeline for one session:
// validate, sanitize, canonicalize, store, then refresh from the store.
type TransactionService struct {
	session         Session
	transactionRepo repositories.TransactionRepositoryInterface
	statsService    StatsServiceInterface
	categoryService CategoryServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a transaction service bound to a session
func NewTransactionService(
	session Session,
	transactionRepo repositories.TransactionRepositoryInterface,
	statsService StatsServiceInterface,
	categoryService CategoryServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		session:         session,
		transactionRepo: transactionRepo,
		statsService:    statsService,
		categoryService: categoryService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create validates and stores a new transaction for the session user. The
// returned snapshot reflects the store after the write was confirmed; on any
// error the stored collection is untouched.
func (s *TransactionService) Create(description, amount string) (*models.Snapshot, error) {
	started := time.Now()

	cleanDescription, cleanAmount, transactionType, err := s.prepareFields(description, amount)
	if err != nil {
		s.metrics.IncrementCounter("transaction.rejected", map[string]string{"operation": "create"})
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      s.session.UserID,
		Description: cleanDescription,
		Amount:      cleanAmount,
		Type:        transactionType,
		Category:    s.categoryService.Categorize(cleanDescription),
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		s.logger.Error("failed to store transaction",
			"error", err,
			"user_id", s.session.UserID)
		s.metrics.IncrementCounter("transaction.store_failed", map[string]string{"operation": "create"})
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.metrics.IncrementCounter("transaction.processed", map[string]string{"operation": "create", "type": transactionType})
	s.metrics.RecordProcessingTime("transaction.pipeline", time.Since(started))

	return s.snapshot()
}

// Update replaces the description and amount of an owned transaction. The
// category and type are re-derived from the new values.
func (s *TransactionService) Update(id uuid.UUID, description, amount string) (*models.Snapshot, error) {
	started := time.Now()

	cleanDescription, cleanAmount, transactionType, err := s.prepareFields(description, amount)
	if err != nil {
		s.metrics.IncrementCounter("transaction.rejected", map[string]string{"operation": "update"})
		return nil, err
	}

	category := s.categoryService.Categorize(cleanDescription)

	if _, err := s.transactionRepo.UpdateOwned(id, s.session.UserID, cleanDescription, cleanAmount, transactionType, category); err != nil {
		return nil, s.mapStoreError(err, "update", id)
	}

	s.metrics.IncrementCounter("transaction.processed", map[string]string{"operation": "update", "type": transactionType})
	s.metrics.RecordProcessingTime("transaction.pipeline", time.Since(started))

	return s.snapshot()
}

// Delete removes an owned transaction
func (s *TransactionService) Delete(id uuid.UUID) (*models.Snapshot, error) {
	if err := s.transactionRepo.DeleteOwned(id, s.session.UserID); err != nil {
		return nil, s.mapStoreError(err, "delete", id)
	}

	s.metrics.IncrementCounter("transaction.processed", map[string]string{"operation": "delete"})

	return s.snapshot()
}

// List returns the current snapshot without mutating anything
func (s *TransactionService) List() (*models.Snapshot, error) {
	return s.snapshot()
}

// Stats returns only the aggregated statistics
func (s *TransactionService) Stats() (*models.Stats, error) {
	snapshot, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.Stats, nil
}

// prepareFields runs validation over the raw fields, aggregating every
// failure, then sanitizes the description and canonicalizes the amount.
// Nothing reaches the store unless this succeeds.
func (s *TransactionService) prepareFields(description, amount string) (string, decimal.Decimal, string, error) {
	fields := map[string]string{
		"description": description,
		"amount":      amount,
	}

	if failures, ok := validation.ValidateForm(fields, transactionRules); !ok {
		return "", decimal.Zero, "", failures
	}

	cleanDescription, err := validation.ValidateDescription(description)
	if err != nil {
		return "", decimal.Zero, "", err
	}
	cleanDescription = sanitize.EscapeMarkup(sanitize.ClampText(cleanDescription, validation.MaxDescriptionLength))

	cleanAmount, transactionType, err := CanonicalizeAmount(amount)
	if err != nil {
		return "", decimal.Zero, "", err
	}

	return cleanDescription, cleanAmount, transactionType, nil
}

// snapshot re-reads the session user's collection and recomputes stats.
// Called only after the store confirmed the preceding operation.
func (s *TransactionService) snapshot() (*models.Snapshot, error) {
	transactions, err := s.transactionRepo.GetByUserID(s.session.UserID)
	if err != nil {
		s.logger.Error("failed to load transactions",
			"error", err,
			"user_id", s.session.UserID)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	stats, err := s.statsService.ComputeStats(transactions)
	if err != nil {
		s.logger.Error("stats aggregation failed",
			"error", err,
			"user_id", s.session.UserID)
		return nil, err
	}

	return &models.Snapshot{
		Transactions: transactions,
		Stats:        stats,
	}, nil
}

func (s *TransactionService) mapStoreError(err error, operation string, id uuid.UUID) error {
	if errors.Is(err, repositories.ErrTransactionNotOwned) {
		s.logger.Warn("rejected operation on transaction outside session scope",
			"operation", operation,
			"transaction_id", id,
			"user_id", s.session.UserID)
		s.metrics.IncrementCounter("transaction.not_permitted", map[string]string{"operation": operation})
		return ErrNotPermitted
	}

	s.logger.Error("store operation failed",
		"error", err,
		"operation", operation,
		"transaction_id", id,
		"user_id", s.session.UserID)
	s.metrics.IncrementCounter("transaction.store_failed", map[string]string{"operation": operation})
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
