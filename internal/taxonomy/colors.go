package taxonomy

import "unicode/utf16"

// sectionColors gives each built-in section a fixed display color.
var sectionColors = map[string]string{
	"Produce":        "#4ECDC4",
	"Dairy & Eggs":   "#FFE66D",
	"Meat & Seafood": "#FF6B6B",
	"Bakery":         "#F4A261",
	"Frozen":         "#95E1D3",
	"Pantry":         "#E9C46A",
	"Beverages":      "#6C9BD1",
	"Snacks":         "#E76F51",
	"Personal Care":  "#C39BD3",
	"Household":      "#A8DADC",
	"Other":          "#999999",
}

// freeformPalette is the fallback palette for sections the verifier
// proposes that are not part of the taxonomy. Assignment is by name hash
// so independent clients pick the same color for the same section.
var freeformPalette = []string{
	"#F28482", "#84A59D", "#F6BD60", "#8E9AAF", "#B5838D",
	"#6D9DC5", "#C9ADA7", "#90BE6D", "#F9844A", "#577590",
}

// ColorFor returns the display color for a section name. Known sections
// have fixed colors; unknown names index the freeform palette by the
// unsigned magnitude of a UTF-16 code-unit hash, modulo the palette
// size. Using uint32 rather than a signed absolute value keeps the most
// negative hash from producing an out-of-range index.
func ColorFor(section string) string {
	if color, ok := sectionColors[section]; ok {
		return color
	}
	return freeformPalette[uint32(hashCodeUnits(section))%uint32(len(freeformPalette))]
}

// hashCodeUnits hashes a string over its UTF-16 code-unit sequence with
// the 31-multiplier polynomial, wrapping at 32 bits. The code-unit
// basis keeps the result stable across clients that hash UTF-16 text
// natively.
func hashCodeUnits(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(unit)
	}
	return h
}
