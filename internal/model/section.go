package model

// Section represents a named store section with the keywords that map
// item names onto it. Sections are ordered within a taxonomy; the first
// matching section wins, so order is part of the contract.
type Section struct {
	Name     string
	Keywords []string
}
