package model

// Match is a single search hit. For fuzzy hits Ranked is true and Score holds
// the normalized match score (0 is a perfect match, lower is better). For
// substring-fallback hits Ranked is false and Score is meaningless; fallback
// hits carry no ranking and are all considered equal.
//
// Matches are transient, produced per search invocation.
type Match struct {
	Line   Line
	Score  float64
	Ranked bool
}
