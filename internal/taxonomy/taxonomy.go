// Package taxonomy defines the store-section taxonomy and the keyword
// classifier that assigns grocery items to sections.
package taxonomy

import (
	"strings"

	"github.com/nstrayer/aisle-list/internal/model"
)

// Taxonomy is an immutable, ordered list of store sections. Order is the
// tie-break: when keywords overlap across sections, the first declared
// section wins.
type Taxonomy struct {
	sections []model.Section
}

// New creates a taxonomy from the given sections, preserving order.
func New(sections []model.Section) Taxonomy {
	copied := make([]model.Section, len(sections))
	copy(copied, sections)
	return Taxonomy{sections: copied}
}

// Default returns the built-in grocery store taxonomy.
func Default() Taxonomy {
	return New([]model.Section{
		{Name: "Frozen", Keywords: []string{
			"frozen", "ice cream", "popsicle", "pizza", "waffle",
		}},
		{Name: "Produce", Keywords: []string{
			"apple", "banana", "orange", "grape", "berr", "lemon", "lime",
			"melon", "peach", "pear", "plum", "avocado", "tomato", "potato",
			"onion", "garlic", "carrot", "celery", "lettuce", "spinach",
			"kale", "broccoli", "cauliflower", "pepper", "cucumber",
			"zucchini", "squash", "mushroom", "corn", "cilantro", "parsley",
			"basil", "ginger", "fruit", "vegetable", "salad", "herb",
		}},
		{Name: "Dairy & Eggs", Keywords: []string{
			"milk", "cheese", "yogurt", "butter", "cream", "egg",
			"half and half", "half-and-half", "sour cream", "cottage",
			"mozzarella", "cheddar", "parmesan",
		}},
		{Name: "Meat & Seafood", Keywords: []string{
			"chicken", "beef", "pork", "turkey", "ham", "bacon", "sausage",
			"steak", "ground", "fish", "salmon", "tuna", "shrimp", "crab",
			"lamb", "hot dog", "deli", "meat",
		}},
		{Name: "Bakery", Keywords: []string{
			"bread", "bagel", "bun", "roll", "tortilla", "muffin",
			"croissant", "cake", "pie", "donut", "baguette", "pita",
		}},
		{Name: "Pantry", Keywords: []string{
			"rice", "pasta", "noodle", "cereal", "oat", "flour", "sugar",
			"salt", "oil", "vinegar", "sauce", "soup", "bean", "lentil",
			"canned", "spice", "honey", "syrup", "peanut butter", "jelly",
			"jam", "ketchup", "mustard", "mayo", "dressing", "broth",
			"stock", "tea", "coffee",
		}},
		{Name: "Beverages", Keywords: []string{
			"water", "juice", "soda", "beer", "wine", "drink",
			"kombucha", "seltzer", "sparkling",
		}},
		{Name: "Snacks", Keywords: []string{
			"chip", "cracker", "cookie", "pretzel", "popcorn", "candy",
			"chocolate", "granola", "nut", "trail mix", "bar",
		}},
		{Name: "Personal Care", Keywords: []string{
			"shampoo", "conditioner", "soap", "toothpaste", "toothbrush",
			"deodorant", "lotion", "razor", "floss", "tissue",
		}},
		{Name: "Household", Keywords: []string{
			"paper towel", "toilet paper", "detergent", "cleaner", "bleach",
			"sponge", "trash bag", "foil", "plastic wrap", "battery",
			"light bulb", "dish soap",
		}},
	})
}

// Sections returns the ordered sections of the taxonomy.
func (t Taxonomy) Sections() []model.Section {
	copied := make([]model.Section, len(t.sections))
	copy(copied, t.sections)
	return copied
}

// Names returns the ordered section names plus the sentinel default.
func (t Taxonomy) Names() []string {
	names := make([]string, 0, len(t.sections)+1)
	for _, s := range t.sections {
		names = append(names, s.Name)
	}
	return append(names, model.DefaultCategory)
}

// Classify assigns an item name to a section. The name is lowercased and
// trimmed, sections are scanned in declared order, and the first section
// with any keyword appearing as a substring wins. Names matching nothing
// fall through to the default section. Pure and total.
func (t Taxonomy) Classify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, section := range t.sections {
		for _, keyword := range section.Keywords {
			if strings.Contains(lowered, keyword) {
				return section.Name
			}
		}
	}
	return model.DefaultCategory
}

// Canonicalize maps a proposed category name onto the taxonomy's exact
// casing when it matches a section name case-insensitively (after
// trimming). Proposals matching no section pass through trimmed, as
// freeform sections.
func (t Taxonomy) Canonicalize(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, name := range t.Names() {
		if strings.EqualFold(trimmed, name) {
			return name
		}
	}
	return trimmed
}
