package model

// Suggestion is a proposed category change awaiting the user's
// accept/reject decision. Suggestions live only between a successful
// verification and that decision; they are never persisted.
type Suggestion struct {
	ItemID   string
	ItemName string
	From     string
	To       string
}
