package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionServiceFactory builds a transaction service bound to one session.
// Each request gets its own instance so no handler state leaks across users.
type TransactionServiceFactory func(session services.Session) services.TransactionServiceInterface

// TransactionHandler handles the transaction endpoints
type TransactionHandler struct {
	serviceFactory  TransactionServiceFactory
	categoryService services.CategoryServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(serviceFactory TransactionServiceFactory, categoryService services.CategoryServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		serviceFactory:  serviceFactory,
		categoryService: categoryService,
	}
}

// Create stores a new transaction and returns the refreshed collection and
// statistics
func (h *TransactionHandler) Create(c echo.Context) error {
	session, err := getSessionFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	snapshot, err := h.serviceFactory(session).Create(req.Description, req.Amount)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toSnapshotResponse(snapshot))
}

// Update replaces the description and amount of an owned transaction
func (h *TransactionHandler) Update(c echo.Context) error {
	session, err := getSessionFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	snapshot, err := h.serviceFactory(session).Update(id, req.Description, req.Amount)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toSnapshotResponse(snapshot))
}

// Delete removes an owned transaction
func (h *TransactionHandler) Delete(c echo.Context) error {
	session, err := getSessionFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	snapshot, err := h.serviceFactory(session).Delete(id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toSnapshotResponse(snapshot))
}

// List returns the session user's transactions, newest first, with the
// current statistics
func (h *TransactionHandler) List(c echo.Context) error {
	session, err := getSessionFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	snapshot, err := h.serviceFactory(session).List()
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toSnapshotResponse(snapshot))
}

// Stats returns only the aggregated statistics
func (h *TransactionHandler) Stats(c echo.Context) error {
	session, err := getSessionFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	stats, err := h.serviceFactory(session).Stats()
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

// Categories lists every category the automatic classifier can assign
func (h *TransactionHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"categories": h.categoryService.Categories(),
	})
}

func toTransactionResponse(t models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
	}
}

func toStatsResponse(stats *models.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalIncome:   stats.TotalIncome,
		TotalExpenses: stats.TotalExpenses,
		Balance:       stats.Balance,
		ByCategory:    stats.ByCategory,
	}
}

func toSnapshotResponse(snapshot *models.Snapshot) dto.SnapshotResponse {
	transactions := make([]dto.TransactionResponse, 0, len(snapshot.Transactions))
	for _, t := range snapshot.Transactions {
		transactions = append(transactions, toTransactionResponse(t))
	}

	return dto.SnapshotResponse{
		Transactions: transactions,
		Stats:        toStatsResponse(snapshot.Stats),
	}
}
