package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNames(t *testing.T) {
	tests := []struct {
		displayName string
		email       string
		firstName   string
		lastName    string
	}{
		{"Amara Perera", "amara@example.com", "Amara", "Perera"},
		{"Amara", "amara@example.com", "Amara", ""},
		{"Amara  De Silva", "amara@example.com", "Amara", "De Silva"},
		{"  Amara Perera  ", "amara@example.com", "Amara", "Perera"},
		{"", "amara@example.com", "amara", ""},
		{"", "no-at-sign", "no-at-sign", ""},
	}

	for _, tt := range tests {
		first, last := DeriveNames(tt.displayName, tt.email)
		assert.Equal(t, tt.firstName, first, "display %q", tt.displayName)
		assert.Equal(t, tt.lastName, last, "display %q", tt.displayName)
	}
}
