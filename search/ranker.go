package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/locusdoc/locus/model"
)

// DefaultLimit caps how many matches are handed to the presentation layer.
const DefaultLimit = 30

// ErrEmptyQuery is returned for queries that are empty or whitespace-only.
// Rejecting them is the caller-facing contract, not a silent no-op.
var ErrEmptyQuery = errors.New("search: query is empty")

// Results is one search invocation's outcome. Matches is capped at the
// ranker's limit; Total reports how many lines matched before capping, which
// is the count surfaced to the user.
type Results struct {
	Matches []model.Match
	Total   int
}

// Ranker produces ranked, deduplicated match lists for a corpus.
type Ranker struct {
	// Limit caps the matches returned; <= 0 means DefaultLimit.
	Limit int

	// newMatcher builds the fuzzy pass. Overridable in tests.
	newMatcher func(corpus model.Corpus, threshold float64) Matcher
}

// NewRanker creates a ranker with the default result cap.
func NewRanker() *Ranker {
	return &Ranker{Limit: DefaultLimit, newMatcher: NewMatcher}
}

// Search ranks corpus lines against query. threshold is in [0, 1], lower is
// stricter. The fuzzy pass runs first; results come back best score first,
// score ties in corpus order. When the fuzzy pass returns nothing, every line
// containing query as a case-insensitive substring becomes an unranked match,
// in corpus order. Identical corpus, query and threshold always yield an
// identical ordered result.
func (r *Ranker) Search(corpus model.Corpus, query string, threshold float64) (Results, error) {
	if strings.TrimSpace(query) == "" {
		return Results{}, ErrEmptyQuery
	}
	if threshold < 0 || threshold > 1 {
		return Results{}, fmt.Errorf("search: threshold %v outside [0, 1]", threshold)
	}

	newMatcher := r.newMatcher
	if newMatcher == nil {
		newMatcher = NewMatcher
	}

	var matches []model.Match
	for _, hit := range newMatcher(corpus, threshold).Match(query) {
		matches = append(matches, model.Match{
			Line:   corpus[hit.Index],
			Score:  hit.Score,
			Ranked: true,
		})
	}

	if len(matches) == 0 {
		matches = substringFallback(corpus, query)
	}

	total := len(matches)
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return Results{Matches: matches, Total: total}, nil
}

// substringFallback scans the corpus for lines containing query as a
// contiguous case-insensitive substring. Hits carry no ranking and keep
// corpus order.
func substringFallback(corpus model.Corpus, query string) []model.Match {
	needle := strings.ToLower(query)

	var matches []model.Match
	for _, line := range corpus {
		if strings.Contains(strings.ToLower(line.Text), needle) {
			matches = append(matches, model.Match{Line: line})
		}
	}
	return matches
}
