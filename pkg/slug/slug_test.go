package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Basic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Red Shirt", "red_shirt"},
		{"T-Shirt Classic", "t-shirt_classic"},
		{"ALL UPPER CASE", "all_upper_case"},
		{"simple", "simple"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Apostrophes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Men's Hoodie", "mens_hoodie"},
		{"Women's Cropped Jacket", "womens_cropped_jacket"},
		{"'''", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Red Shirt",
		"Men's Hoodie",
		"already_normalized",
		"",
		"  spaced  out  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalizing twice must equal normalizing once for %q", in)
	}
}

func TestNormalize_EdgeCases(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "___", Normalize("   "))
	assert.Equal(t, "a", Normalize("A"))
	assert.Equal(t, "123", Normalize("123"))
}
