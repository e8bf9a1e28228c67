package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEstateValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int64
	}{
		{"plain with separators", "1,500,000", 1_500_000},
		{"dollar decimal million", "$2.5 million", 2_500_000},
		{"uppercase K marker", "500K", 500_000},
		{"lowercase k marker", "600k", 600_000},
		{"decimal M marker", "1.3M", 1_300_000},
		{"billion word", "$1 billion", 1_000_000_000},
		{"thousand word", "750 thousand", 750_000},
		{"embedded in prose", "worth about $600,000 total", 600_000},
		{"marker followed by letter is not magnitude", "2 months", 2},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"no digits", "unknown", 0},
		{"numeric input", 1_250_000, 1_250_000},
		{"large float stays decimal", float64(12_000_000), 12_000_000},
		{"float32 input", float32(250_000), 250_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEstateValue(tt.input))
		})
	}
}

func TestParseEstateValue_Idempotent(t *testing.T) {
	inputs := []string{"$2.5 million", "500K", "1,500,000", "worth about $600,000"}
	for _, in := range inputs {
		once := ParseEstateValue(in)
		again := ParseEstateValue(fmt.Sprint(once))
		assert.Equal(t, once, again, "re-parsing canonical output of %q must be stable", in)
	}
}

func TestParseEstateValue_DoesNotMutateInput(t *testing.T) {
	in := "$2.5 million"
	_ = ParseEstateValue(in)
	assert.Equal(t, "$2.5 million", in)
}
