package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
)

// Session identifies the authenticated user a transaction service instance
// acts for. Services never consult a global current user; the session is
// injected at construction time.
type Session struct {
	UserID   uuid.UUID
	Username string
}

// TransactionServiceInterface defines the per-session transaction operations.
// Every mutation returns a models.Snapshot built from re-reading the store,
// so the caller only ever renders confirmed state.
type TransactionServiceInterface interface {
	Create(description, amount string) (*models.Snapshot, error)
	Update(id uuid.UUID, description, amount string) (*models.Snapshot, error)
	Delete(id uuid.UUID) (*models.Snapshot, error)
	List() (*models.Snapshot, error)
	Stats() (*models.Stats, error)
}

// StatsServiceInterface computes aggregate statistics over a transaction
// collection
type StatsServiceInterface interface {
	ComputeStats(transactions []models.Transaction) (*models.Stats, error)
}

// CategoryServiceInterface assigns a category to a transaction based on its
// description
type CategoryServiceInterface interface {
	Categorize(description string) string
	Categories() []string
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Logout(token string) error
}

type TokenServiceInterface interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// SessionStoreInterface tracks issued sessions so logout can revoke them
// before the token expires
type SessionStoreInterface interface {
	Put(token string, user dto.SessionUser)
	Get(token string) (dto.SessionUser, bool)
	Delete(token string)
	Count() int
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
