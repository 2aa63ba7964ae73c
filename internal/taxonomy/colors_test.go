package taxonomy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorForKnownSections(t *testing.T) {
	assert.Equal(t, "#4ECDC4", ColorFor("Produce"))
	assert.Equal(t, "#999999", ColorFor("Other"))
}

func TestColorForFreeformSections(t *testing.T) {
	// Freeform names index the palette by unsigned hash magnitude; the
	// expected indexes are fixed by the UTF-16 code-unit hash so any
	// client hashing the same way picks the same color.
	tests := []struct {
		section string
		want    string
	}{
		{section: "Health & Beauty", want: freeformPalette[6]}, // hash is negative
		{section: "Pet Supplies", want: freeformPalette[0]},
		{section: "International Foods", want: freeformPalette[5]},
		{section: "Deli & Prepared", want: freeformPalette[1]}, // hash is negative
		{section: "🍎 Snacks", want: freeformPalette[7]},        // surrogate pair
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorFor(tt.section))
			assert.Equal(t, tt.want, ColorFor(tt.section), "stable across calls")
		})
	}
}

func TestPaletteIndexSurvivesMinInt32(t *testing.T) {
	// "GydZG_" hashes to exactly math.MinInt32, where a signed abs-based
	// index breaks; the unsigned conversion must still pick a valid
	// palette entry (2147483648 % 10 == 8).
	h := hashCodeUnits("GydZG_")
	require.Equal(t, int32(math.MinInt32), h)

	idx := uint32(h) % uint32(len(freeformPalette))
	assert.Less(t, int(idx), len(freeformPalette))
	assert.Equal(t, freeformPalette[8], ColorFor("GydZG_"))
}

func TestHashCodeUnits(t *testing.T) {
	assert.Equal(t, int32(0), hashCodeUnits(""))
	assert.Equal(t, int32('a'), hashCodeUnits("a"))
	// Matches the canonical 31-polynomial over UTF-16 code units
	assert.Equal(t, int32(-1117549830), hashCodeUnits("Health & Beauty"))
	assert.Equal(t, int32(2064260947), hashCodeUnits("🍎 Snacks"))
}
