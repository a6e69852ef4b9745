package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Trims surrounding whitespace",
			input:    "   Mahamat Saleh   ",
			expected: "Mahamat Saleh",
		},
		{
			name:     "Strips HTML tags",
			input:    "<script>alert('x')</script>Mahamat",
			expected: "alert('x')Mahamat",
		},
		{
			name:     "Removes control characters",
			input:    "Mahamat\x00\x07 Saleh",
			expected: "Mahamat Saleh",
		},
		{
			name:     "Collapses internal whitespace",
			input:    "Mahamat \t\t  Saleh",
			expected: "Mahamat Saleh",
		},
		{
			name:     "Empty input stays empty",
			input:    "",
			expected: "",
		},
		{
			name:     "Only markup becomes empty",
			input:    "<b></b>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeMultiline(t *testing.T) {
	input := "Line one   with  spaces\n\n<em>Line two</em>\x01"
	expected := "Line one with spaces\n\nLine two"
	assert.Equal(t, expected, SanitizeMultiline(input))
}

func TestSanitizeMultilinePreservesLineBreaks(t *testing.T) {
	input := "We need:\n- a website\n- hosting"
	assert.Equal(t, input, SanitizeMultiline(input))
}

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+235 66 12 34 56", "+23566123456"},
		{"(235) 66-12-34-56", "23566123456"},
		{"  66.12.34.56  ", "66123456"},
		{"66 12 + 34", "661234"}, // plus only allowed at the front
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizePhone(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@bar.com", NormalizeEmail("  Foo@BAR.com "))
	assert.Equal(t, "contact@experiencetech.td", NormalizeEmail("Contact@ExperienceTech.TD"))
}
