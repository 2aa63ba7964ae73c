package taxonomy

import (
	"testing"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tax := Default()

	tests := []struct {
		name string
		item string
		want string
	}{
		{name: "simple produce", item: "apples", want: "Produce"},
		{name: "dairy", item: "whole milk", want: "Dairy & Eggs"},
		{name: "bakery", item: "sourdough bread", want: "Bakery"},
		{name: "frozen wins over dairy for ice cream", item: "ice cream", want: "Frozen"},
		{name: "case insensitive", item: "CHICKEN THIGHS", want: "Meat & Seafood"},
		{name: "whitespace trimmed", item: "  bananas  ", want: "Produce"},
		{name: "no keyword falls through", item: "xyzzy", want: "Other"},
		{name: "empty name", item: "", want: "Other"},
		{name: "household", item: "paper towels", want: "Household"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.Classify(tt.item))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	tax := Default()
	for _, name := range []string{"milk", "xyzzy", "frozen pizza", "chips"} {
		first := tax.Classify(name)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, tax.Classify(name))
		}
	}
}

func TestClassifyDeclarationOrderWins(t *testing.T) {
	// Overlapping keywords resolve to the first declared section
	tax := New([]model.Section{
		{Name: "A", Keywords: []string{"milk"}},
		{Name: "B", Keywords: []string{"milk", "oat"}},
	})
	assert.Equal(t, "A", tax.Classify("oat milk"))
	assert.Equal(t, "B", tax.Classify("oats"))
}

func TestCanonicalize(t *testing.T) {
	tax := Default()

	assert.Equal(t, "Produce", tax.Canonicalize("produce"))
	assert.Equal(t, "Produce", tax.Canonicalize("  PRODUCE "))
	assert.Equal(t, "Dairy & Eggs", tax.Canonicalize("dairy & eggs"))
	assert.Equal(t, "Other", tax.Canonicalize("other"))
	assert.Equal(t, "Health & Beauty", tax.Canonicalize("Health & Beauty"))
	assert.Equal(t, "", tax.Canonicalize("   "))
}

func TestNamesEndWithDefault(t *testing.T) {
	names := Default().Names()
	assert.Equal(t, model.DefaultCategory, names[len(names)-1])
}
