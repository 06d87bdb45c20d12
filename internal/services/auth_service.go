package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/sanitize"
	"fintrack/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
)

// registrationRules validate the raw registration form, aggregating every
// field failure
var registrationRules = map[string]validation.FieldRule{
	"username": validation.UsernameRule,
	"password": validation.PasswordRule,
}

// AuthService handles registration, login and logout
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	sessionStore    SessionStoreInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	sessionStore SessionStoreInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		sessionStore:    sessionStore,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a new user account. Usernames are normalized before
// storage and uniqueness is checked against the normalized form, so
// "John_Doe" and "john_doe" are the same account.
func (s *AuthService) Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	fields := map[string]string{
		"username": req.Username,
		"password": req.Password,
	}
	if failures, ok := validation.ValidateForm(fields, registrationRules); !ok {
		s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "register_rejected"})
		return nil, failures
	}

	username := sanitize.NormalizeUsername(req.Username)
	if len(username) < validation.MinUsernameLength {
		return nil, validation.Errors{"username": "username contains too few usable characters"}
	}

	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "register_duplicate"})
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
		"ip", ipAddress)
	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "register"})

	return s.openSession(user)
}

// Login authenticates a user and opens a session
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	username := sanitize.NormalizeUsername(req.Username)

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login_unknown_user"})
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsLocked() {
		s.logger.Warn("login attempt on locked account",
			"user_id", user.ID,
			"ip", ipAddress)
		s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login_locked"})
		return nil, ErrAccountLocked
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		user.IncrementFailedAttempts()
		if err := s.userRepo.UpdateFailedLoginAttempts(user); err != nil {
			s.logger.Error("failed to update login attempts",
				"error", err,
				"user_id", user.ID)
		}

		if user.IsLocked() {
			s.logger.Warn("account locked after repeated failures",
				"user_id", user.ID,
				"ip", ipAddress)
			s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "account_locked"})
		}

		s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login_failed"})
		return nil, ErrInvalidCredentials
	}

	user.ResetFailedAttempts()
	if err := s.userRepo.UpdateFailedLoginAttempts(user); err != nil {
		// Non-critical: stale counters shouldn't block a valid login
		s.logger.Warn("failed to reset login attempts",
			"error", err,
			"user_id", user.ID)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.logger.Warn("failed to stamp last login",
			"error", err,
			"user_id", user.ID)
	}

	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login"})

	return s.openSession(user)
}

// Logout revokes the session for a token. Unknown tokens are ignored; logout
// never fails from the caller's point of view.
func (s *AuthService) Logout(token string) error {
	s.sessionStore.Delete(token)
	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "logout"})
	s.metrics.RecordGauge("sessions.active", float64(s.sessionStore.Count()), nil)
	return nil
}

func (s *AuthService) openSession(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.sessionStore.Put(token, dto.SessionUser{
		ID:       user.ID.String(),
		Username: user.Username,
		Token:    token,
	})
	s.metrics.RecordGauge("sessions.active", float64(s.sessionStore.Count()), nil)

	return &dto.AuthResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
