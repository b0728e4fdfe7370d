package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"first.last@example.co.uk",
		"user+tag@domain.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"invalid",
		"@example.com",
		"user@",
		"user@nodot",
		"user@@example.com",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
