package reconcile

import (
	"log/slog"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
)

// reservedCategories are names that collide with prototype/special keys
// in the JavaScript object model of the web client. A verifier proposal
// using one of these is dropped rather than applied.
var reservedCategories = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// Diff compares verifier output against the current item assignments and
// returns one suggestion per item whose proposed category differs.
// Proposed names matching a taxonomy section case-insensitively are
// canonicalized to the taxonomy's exact casing; everything else passes
// through verbatim as a freeform section. Items absent from the output
// are left untouched.
func Diff(tax taxonomy.Taxonomy, items []model.Item, verified []model.Assignment) []model.Suggestion {
	proposed := make(map[string]string, len(verified))
	for _, assignment := range verified {
		category := tax.Canonicalize(assignment.Category)
		if category == "" {
			continue
		}
		if _, reserved := reservedCategories[category]; reserved {
			slog.Warn("dropping reserved category proposal",
				"item_id", assignment.ID,
				"category", category)
			continue
		}
		proposed[assignment.ID] = category
	}

	var suggestions []model.Suggestion
	for _, item := range items {
		to, ok := proposed[item.ID]
		if !ok || to == item.Category {
			continue
		}
		suggestions = append(suggestions, model.Suggestion{
			ItemID:   item.ID,
			ItemName: item.Name,
			From:     item.Category,
			To:       to,
		})
	}
	return suggestions
}

// Apply sets each suggested item's category in place. The caller invokes
// it once with the full accepted suggestion list; there is no partial
// application. Suggestions for items no longer present are skipped.
func Apply(items []model.Item, suggestions []model.Suggestion) {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}
	for _, suggestion := range suggestions {
		if i, ok := index[suggestion.ItemID]; ok {
			items[i].Category = suggestion.To
		}
	}
}
