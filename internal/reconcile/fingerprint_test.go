package reconcile

import (
	"testing"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	items := []model.Item{
		{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
		{ID: "2", Name: "bread", Category: "Bakery"},
		{ID: "3", Name: "apples", Category: "Produce"},
	}

	t.Run("invariant under permutation", func(t *testing.T) {
		permuted := []model.Item{items[2], items[0], items[1]}
		assert.Equal(t, Fingerprint(items), Fingerprint(permuted))
	})

	t.Run("invariant under category and checked changes", func(t *testing.T) {
		modified := make([]model.Item, len(items))
		copy(modified, items)
		modified[0].Category = "Other"
		modified[1].Checked = true
		assert.Equal(t, Fingerprint(items), Fingerprint(modified))
	})

	t.Run("changes on rename", func(t *testing.T) {
		renamed := make([]model.Item, len(items))
		copy(renamed, items)
		renamed[0].Name = "oat milk"
		assert.NotEqual(t, Fingerprint(items), Fingerprint(renamed))
	})

	t.Run("changes on add and delete", func(t *testing.T) {
		added := append([]model.Item{}, items...)
		added = append(added, model.Item{ID: "4", Name: "eggs"})
		assert.NotEqual(t, Fingerprint(items), Fingerprint(added))
		assert.NotEqual(t, Fingerprint(items), Fingerprint(items[:2]))
	})

	t.Run("empty set", func(t *testing.T) {
		assert.Equal(t, "", Fingerprint(nil))
	})
}
