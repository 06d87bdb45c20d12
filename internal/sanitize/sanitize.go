package sanitize

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxUsernameLength is the hard cap applied by NormalizeUsername
	MaxUsernameLength = 20

	amountDecimalPlaces = 2
)

// markupReplacer maps the five HTML-significant characters to their entity
// equivalents. strings.Replacer walks the input once, so already-present
// entities are not double-escaped within a single call. Calling EscapeMarkup
// twice WILL double-escape; escape exactly once at the storage boundary.
var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeMarkup replaces HTML-significant characters with entity equivalents
func EscapeMarkup(text string) string {
	return markupReplacer.Replace(text)
}

// StripControlChars removes all control characters (0x00-0x1F and 0x7F)
func StripControlChars(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, text)
}

// NormalizeUsername lowercases a username, drops every character outside
// [a-z0-9_-] and truncates the result to MaxUsernameLength. Whitespace is
// trimmed before filtering.
func NormalizeUsername(text string) string {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}

	normalized := b.String()
	if len(normalized) > MaxUsernameLength {
		normalized = normalized[:MaxUsernameLength]
	}
	return normalized
}

// ClampText strips control characters, trims surrounding whitespace and
// truncates the text to maxLength runes
func ClampText(text string, maxLength int) string {
	cleaned := strings.TrimSpace(StripControlChars(text))
	if maxLength < 0 {
		return cleaned
	}

	runes := []rune(cleaned)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return cleaned
}

// CanonicalizeAmountString parses a raw amount string into a fixed-point
// value rounded to two decimal places. Half-cent values round away from zero.
// Non-numeric input yields zero rather than an error; callers that need to
// reject bad input must validate first.
func CanonicalizeAmountString(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return parsed.Round(amountDecimalPlaces)
}
