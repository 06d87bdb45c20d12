package sanitize

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkup(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"script tag", "<script>alert('xss')</script>", "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"},
		{"ampersand", "fish & chips", "fish &amp; chips"},
		{"double quotes", `say "hello"`, "say &quot;hello&quot;"},
		{"plain text untouched", "groceries at the market", "groceries at the market"},
		{"empty string", "", ""},
		{"all five characters", `&<>"'`, "&amp;&lt;&gt;&quot;&#39;"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EscapeMarkup(tc.input))
		})
	}
}

func TestEscapeMarkup_NoRawAngleBracketsSurvive(t *testing.T) {
	inputs := []string{
		"<script>evil()</script>",
		"a < b > c",
		"<img src=x onerror=alert(1)>",
		"<<nested>>",
	}

	for _, input := range inputs {
		escaped := EscapeMarkup(input)
		assert.NotContains(t, escaped, "<", "escaped text must not contain raw '<': %q", escaped)
		assert.NotContains(t, escaped, ">", "escaped text must not contain raw '>': %q", escaped)
	}
}

func TestEscapeMarkup_DoubleEscapingIsNotPrevented(t *testing.T) {
	// The contract is escape-exactly-once; re-escaping double-escapes.
	once := EscapeMarkup("<b>")
	twice := EscapeMarkup(once)
	assert.Equal(t, "&lt;b&gt;", once)
	assert.Equal(t, "&amp;lt;b&amp;gt;", twice)
}

func TestStripControlChars(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"null byte", "a\x00b", "ab"},
		{"newline and tab", "line1\nline2\tend", "line1line2end"},
		{"delete char", "abc\x7fdef", "abcdef"},
		{"full low range", "\x01\x02\x1e\x1fok", "ok"},
		{"clean text untouched", "café lunch", "café lunch"},
		{"empty string", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripControlChars(tc.input))
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"mixed case with punctuation", " John_Doe! ", "john_doe"},
		{"already normalized", "valid_user-1", "valid_user-1"},
		{"uppercase", "ADMIN", "admin"},
		{"spaces inside", "john doe", "johndoe"},
		{"unicode stripped", "josé", "jos"},
		{"truncated to twenty", strings.Repeat("a", 30), strings.Repeat("a", 20)},
		{"empty", "", ""},
		{"only invalid characters", "!@#$%", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeUsername(tc.input))
		})
	}
}

func TestClampText(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{"trims whitespace", "  lunch  ", 100, "lunch"},
		{"strips controls before truncating", "ab\x00cdef", 4, "abcd"},
		{"truncates long text", "abcdefgh", 3, "abc"},
		{"respects rune boundaries", "éééé", 2, "éé"},
		{"short text untouched", "ok", 10, "ok"},
		{"negative max means no truncation", strings.Repeat("x", 50), -1, strings.Repeat("x", 50)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClampText(tc.input, tc.maxLength))
		})
	}
}

func TestCanonicalizeAmountString(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"integer", "100", "100"},
		{"two decimals kept", "42.50", "42.5"},
		{"third decimal rounds half away from zero", "10.005", "10.01"},
		{"negative half rounds away from zero", "-10.005", "-10.01"},
		{"rounds down below half", "10.004", "10"},
		{"negative amount", "-99.99", "-99.99"},
		{"whitespace tolerated", "  12.34  ", "12.34"},
		{"non-numeric yields zero", "abc", "0"},
		{"empty yields zero", "", "0"},
		{"mixed garbage yields zero", "12x34", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tc.expected)
			assert.NoError(t, err)
			assert.True(t, expected.Equal(CanonicalizeAmountString(tc.input)),
				"expected %s, got %s", expected, CanonicalizeAmountString(tc.input))
		})
	}
}
