package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{"valid username returned unchanged", "valid_user-1", "valid_user-1", false},
		{"mixed case preserved", "John_Doe", "John_Doe", false},
		{"trimmed", "  alice  ", "alice", false},
		{"minimum length", "abc", "abc", false},
		{"maximum length", strings.Repeat("a", 20), strings.Repeat("a", 20), false},
		{"too short", "ab", "", true},
		{"too long", strings.Repeat("a", 21), "", true},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"illegal punctuation", "john.doe", "", true},
		{"spaces inside", "john doe", "", true},
		{"unicode rejected", "josé", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ValidateUsername(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				var vErr *Error
				assert.ErrorAs(t, err, &vErr)
				assert.Equal(t, "username", vErr.Field)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"minimum length", "abcd", false},
		{"maximum length", strings.Repeat("x", 128), false},
		{"whitespace preserved", " p w ", false},
		{"too short", "abc", true},
		{"too long", strings.Repeat("x", 129), true},
		{"empty", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ValidatePassword(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.input, result, "password must be returned byte for byte")
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{"plain description", "coffee at the corner shop", "coffee at the corner shop", false},
		{"trimmed", "  lunch  ", "lunch", false},
		{"exactly 500 characters", strings.Repeat("d", 500), strings.Repeat("d", 500), false},
		{"501 characters", strings.Repeat("d", 501), "", true},
		{"empty", "", "", true},
		{"whitespace only", "   \t ", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ValidateDescription(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestValidateAmount_ValidRange(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"positive integer", "100", "100"},
		{"negative amount", "-40", "-40"},
		{"smallest cent", "0.01", "0.01"},
		{"negative cent", "-0.01", "-0.01"},
		{"rounds half away from zero", "19.995", "20"},
		{"negative rounds half away from zero", "-19.995", "-20"},
		{"at the positive maximum", "1000000", "1000000"},
		{"at the negative maximum", "-1000000", "-1000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tc.expected)
			require.NoError(t, err)

			result, err := ValidateAmount(tc.input)
			assert.NoError(t, err)
			assert.True(t, expected.Equal(result), "expected %s, got %s", expected, result)
		})
	}
}

func TestValidateAmount_ZeroAlwaysFails(t *testing.T) {
	zeroForms := []string{"0", "-0", "0.00", "-0.00", "0.000"}

	for _, input := range zeroForms {
		_, err := ValidateAmount(input)
		assert.Error(t, err, "zero representation %q must fail", input)
		var vErr *Error
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "amount", vErr.Field)
		assert.Contains(t, vErr.Message, "zero")
	}
}

func TestValidateAmount_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"not a number", "abc"},
		{"empty", ""},
		{"partial number", "12.3.4"},
		{"over the maximum", "1000000.01"},
		{"under the negative maximum", "-1000000.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateAmount(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestValidateForm_AggregatesAllFailures(t *testing.T) {
	fields := map[string]string{
		"username":    "ab",
		"password":    "x",
		"description": "",
		"amount":      "0",
	}
	rules := map[string]FieldRule{
		"username":    UsernameRule,
		"password":    PasswordRule,
		"description": DescriptionRule,
		"amount":      AmountRule,
	}

	failures, ok := ValidateForm(fields, rules)
	assert.False(t, ok)
	assert.Len(t, failures, 4, "every invalid field must be reported, not just the first")
	assert.Contains(t, failures, "username")
	assert.Contains(t, failures, "password")
	assert.Contains(t, failures, "description")
	assert.Contains(t, failures, "amount")
}

func TestValidateForm_PartialFailure(t *testing.T) {
	fields := map[string]string{
		"description": "groceries",
		"amount":      "not-a-number",
	}
	rules := map[string]FieldRule{
		"description": DescriptionRule,
		"amount":      AmountRule,
	}

	failures, ok := ValidateForm(fields, rules)
	assert.False(t, ok)
	assert.Len(t, failures, 1)
	assert.Contains(t, failures, "amount")
	assert.NotContains(t, failures, "description")
}

func TestValidateForm_AllValid(t *testing.T) {
	fields := map[string]string{
		"username": "valid_user-1",
		"amount":   "42.50",
	}
	rules := map[string]FieldRule{
		"username": UsernameRule,
		"amount":   AmountRule,
	}

	failures, ok := ValidateForm(fields, rules)
	assert.True(t, ok)
	assert.Empty(t, failures)
}
