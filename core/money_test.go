package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain number", "5000", 5000, true},
		{"currency sign", "$5000", 5000, true},
		{"thousands separators", "$1,250,000", 1250000, true},
		{"decimal", "99.50", 99.5, true},
		{"surrounding whitespace", "  $2,000 ", 2000, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"malformed", "up to ten grand", 0, false},
		{"range text", "1000-5000", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$5,000", FormatAmount(5000))
	assert.Equal(t, "$1,250,000", FormatAmount(1250000))
	assert.Equal(t, "$0", FormatAmount(0))
}
