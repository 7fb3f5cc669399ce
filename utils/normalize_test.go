package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected string
	}{
		{"nil", nil, ""},
		{"empty", ptr(""), ""},
		{"whitespace only", ptr("   "), ""},
		{"mixed case", ptr("Jane@X.com"), "jane@x.com"},
		{"trailing space", ptr("jane@x.com "), "jane@x.com"},
		{"leading and trailing", ptr("  JANE@X.COM  "), "jane@x.com"},
		{"already normal", ptr("jane@x.com"), "jane@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected string
	}{
		{"nil", nil, ""},
		{"empty", ptr(""), ""},
		{"formatted", ptr("(555) 123-4567"), "5551234567"},
		{"plain digits", ptr("5551234567"), "5551234567"},
		{"dashes", ptr("555-123-4567"), "5551234567"},
		{"with country code", ptr("+1 555 123 4567"), "15551234567"},
		{"too short", ptr("123"), ""},
		{"nine digits", ptr("555123456"), ""},
		{"ten digits exactly", ptr("5551234560"), "5551234560"},
		{"letters only", ptr("call me"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "5551234567", StripNonDigits("(555) 123-4567"))
	assert.Equal(t, "", StripNonDigits("no digits"))
	assert.Equal(t, "42", StripNonDigits("4x2"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+15551234567"))
	assert.True(t, ValidatePhone("555-123-4567"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("0"))
}

func ptr(s string) *string { return &s }
