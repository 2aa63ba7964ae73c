// Package model defines the core domain models used throughout the application.
package model

import "time"

// DefaultCategory is the sentinel section assigned when no taxonomy
// keyword matches an item name.
const DefaultCategory = "Other"

// Item represents a single grocery item on a list.
type Item struct {
	CreatedAt time.Time
	ID        string // ULID, assigned at creation, never reused
	ListID    string
	Name      string
	Category  string // always non-empty; taxonomy name or freeform
	SortOrder int
	Checked   bool
}

// Assignment is the (id, name, category) triple exchanged with the
// category verification service.
type Assignment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Assignments projects items down to the triples sent to the verifier.
func Assignments(items []Item) []Assignment {
	out := make([]Assignment, len(items))
	for i, item := range items {
		out[i] = Assignment{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
		}
	}
	return out
}
