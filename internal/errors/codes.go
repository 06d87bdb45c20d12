package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication and authorization error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
	AuthNotPermitted       ErrorCode = "AUTH_005"
	AuthAccountLocked      ErrorCode = "AUTH_006"
	AuthUserAlreadyExists  ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionZeroAmount    ErrorCode = "TRANSACTION_003"
)

// Aggregation error codes (AGGREGATION_*)
const (
	AggregationInvariantViolation ErrorCode = "AGGREGATION_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemStoreUnavailable   ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid username or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthNotPermitted:       "Operation not permitted",
	AuthAccountLocked:      "Account is locked due to too many failed attempts",
	AuthUserAlreadyExists:  "A user with this username already exists",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	TransactionNotFound:      "Transaction not found",
	TransactionInvalidAmount: "Invalid transaction amount",
	TransactionZeroAmount:    "Transaction amount cannot be zero",

	AggregationInvariantViolation: "Statistics could not be computed from the stored transactions",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemStoreUnavailable:   "Transaction store temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemConfigurationError: "System configuration error",
}

// GetErrorMessage returns the default message for a given error code.
// Unknown codes fall back to a generic message.
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
