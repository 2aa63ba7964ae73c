package reconcile

import (
	"sort"
	"strings"

	"github.com/nstrayer/aisle-list/internal/model"
)

// Fingerprint computes a stable digest of the item set being
// categorized. Each item contributes "{id}:{name}"; the parts are sorted
// so input order never matters, and category/checked state is excluded
// so only identity or rename changes invalidate a prior verification.
func Fingerprint(items []model.Item) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.ID + ":" + item.Name
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
