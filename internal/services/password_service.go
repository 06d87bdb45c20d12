package services

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"fintrack/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// BCryptCost factor 12 for credential hashing
const BCryptCost = 12

var ErrPasswordEmpty = errors.New("password cannot be empty")

// PasswordService handles password hashing and validation. Passwords are
// pre-hashed with SHA-256 before bcrypt, so the full 4-128 character range is
// accepted despite bcrypt's 72-byte input limit.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a new password service with the default cost
func NewPasswordService() PasswordServiceInterface {
	return &PasswordService{
		cost: BCryptCost,
	}
}

// NewPasswordServiceWithCost creates a password service with an explicit
// bcrypt cost, used by tests to avoid the full work factor
func NewPasswordServiceWithCost(cost int) PasswordServiceInterface {
	return &PasswordService{
		cost: cost,
	}
}

// ValidatePassword checks the password length bounds. No character-class
// rules: length is the only requirement.
func (ps *PasswordService) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	_, err := validation.ValidatePassword(password)
	return err
}

// HashPassword validates and hashes a password
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword(digestPassword(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a plain password with a hashed password.
// Returns true if they match, false otherwise.
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), digestPassword(password))
	return err == nil
}

// digestPassword collapses a password of any length into a fixed-size input
// for bcrypt. Base64 keeps the digest free of NUL bytes.
func digestPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}
