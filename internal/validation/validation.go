package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20

	MinPasswordLength = 4
	MaxPasswordLength = 128

	MaxDescriptionLength = 500

	amountDecimalPlaces = 2
)

// MaxTransactionAmount is the largest magnitude accepted for a single transaction
var MaxTransactionAmount = decimal.NewFromInt(1_000_000)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Error is a field-level validation failure. The message is safe to show to
// the end user verbatim.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewError creates a validation error for the given field
func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Errors aggregates field-level failures keyed by field name
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, message := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	return strings.Join(parts, "; ")
}

// ValidateUsername checks that a username is 3-20 characters of
// [A-Za-z0-9_-] after trimming. Returns the trimmed value; case is preserved
// here, lowercasing is the sanitizer's job.
func ValidateUsername(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewError("username", "username is required")
	}

	if len(trimmed) < MinUsernameLength {
		return "", NewError("username", fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}

	if len(trimmed) > MaxUsernameLength {
		return "", NewError("username", fmt.Sprintf("username must not exceed %d characters", MaxUsernameLength))
	}

	if !usernameRegex.MatchString(trimmed) {
		return "", NewError("username", "username may only contain letters, numbers, hyphens and underscores")
	}

	return trimmed, nil
}

// ValidatePassword checks password length bounds. The password is returned
// unchanged: no trimming or normalization, passwords must preserve case and
// whitespace exactly as typed.
func ValidatePassword(raw string) (string, error) {
	if raw == "" {
		return "", NewError("password", "password is required")
	}

	if len(raw) < MinPasswordLength {
		return "", NewError("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	if len(raw) > MaxPasswordLength {
		return "", NewError("password", fmt.Sprintf("password must not exceed %d characters", MaxPasswordLength))
	}

	return raw, nil
}

// ValidateDescription checks that a description is non-empty and at most 500
// characters after trimming. Returns the trimmed value.
func ValidateDescription(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewError("description", "description is required")
	}

	if utf8.RuneCountInString(trimmed) > MaxDescriptionLength {
		return "", NewError("description", fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength))
	}

	return trimmed, nil
}

// ValidateAmount parses a raw amount and enforces the monetary business
// rules: it must be a finite number, non-zero in any representation
// ("0", "-0", "0.00" all fail) and at most 1,000,000 in magnitude.
// Returns the value rounded to two decimal places, half away from zero.
func ValidateAmount(raw string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, NewError("amount", "amount must be a number")
	}

	if parsed.IsZero() {
		return decimal.Zero, NewError("amount", "amount cannot be zero")
	}

	if parsed.Abs().GreaterThan(MaxTransactionAmount) {
		return decimal.Zero, NewError("amount", "amount exceeds the allowed maximum")
	}

	return parsed.Round(amountDecimalPlaces), nil
}

// FieldRule validates a single raw field value
type FieldRule func(raw string) error

// Predefined rules for ValidateForm, one per validator. Each discards the
// normalized value; form validation only decides pass/fail per field.
var (
	UsernameRule FieldRule = func(raw string) error {
		_, err := ValidateUsername(raw)
		return err
	}

	PasswordRule FieldRule = func(raw string) error {
		_, err := ValidatePassword(raw)
		return err
	}

	DescriptionRule FieldRule = func(raw string) error {
		_, err := ValidateDescription(raw)
		return err
	}

	AmountRule FieldRule = func(raw string) error {
		_, err := ValidateAmount(raw)
		return err
	}
)

// ValidateForm runs the named rule for each field and aggregates every
// failure rather than stopping at the first one, so a UI can surface all
// invalid fields at once. Fields without a rule are skipped. Returns the
// failure map and an overall pass flag.
func ValidateForm(fields map[string]string, rules map[string]FieldRule) (Errors, bool) {
	failures := make(Errors)

	for name, rule := range rules {
		if rule == nil {
			continue
		}
		if err := rule(fields[name]); err != nil {
			var vErr *Error
			if errors.As(err, &vErr) {
				failures[name] = vErr.Message
			} else {
				failures[name] = err.Error()
			}
		}
	}

	return failures, len(failures) == 0
}
