package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	// Only the domain part is lower-cased; the local part is kept as entered.
	cases := []struct {
		input    string
		expected string
	}{
		{"test1@Example.com", "test1@example.com"},
		{"Test2@EXAMPLE.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.com", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"  test5@example.com  ", "test5@example.com"},
	}

	for _, tc := range cases {
		got, err := NormalizeEmail(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got)
	}
}

func TestNormalizeEmailInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "no-at-sign", "@example.com", "user@"} {
		_, err := NormalizeEmail(input)
		assert.ErrorIs(t, err, ErrEmailRequired, "input %q", input)
	}
}
