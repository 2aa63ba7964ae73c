package model

import "time"

// GroceryList is a named collection of items, typically created from a
// photographed handwritten list.
type GroceryList struct {
	CreatedAt time.Time
	ID        string // UUID
	Name      string
}
