package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		gstin string
		want  bool
	}{
		{"Valid GSTIN", "22AAAAA0000A1Z5", true},
		{"Valid with letter check char", "27ABCDE1234F1ZK", true},
		{"Too short", "22AAAAA0000A1Z", false},
		{"Too long", "22AAAAA0000A1Z55", false},
		{"Lowercase letters", "22aaaaa0000a1z5", false},
		{"Missing Z at position 14", "22AAAAA0000A1X5", false},
		{"Entity number zero", "22AAAAA0000A0Z5", false},
		{"Non-numeric state code", "2AAAAAA0000A1Z5", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidGSTIN(tt.gstin))
		})
	}
}
