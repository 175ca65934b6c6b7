package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "International number with spaces and dashes",
			input: "+33 6 00-00-00-00",
			want:  "+33600000000",
		},
		{
			name:  "Plain digits untouched",
			input: "0600000000",
			want:  "0600000000",
		},
		{
			name:  "Parentheses and dots stripped",
			input: "(06) 00.00.00.00",
			want:  "0600000000",
		},
		{
			name:  "Plus kept only when leading",
			input: "06+00000000",
			want:  "0600000000",
		},
		{
			name:  "Leading whitespace before plus",
			input: "  +33600000000",
			want:  "+33600000000",
		},
		{
			name:  "No digits",
			input: "appelez-moi",
			want:  "",
		},
		{
			name:  "Empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPhoneNumber(tt.input))
		})
	}
}
