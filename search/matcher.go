package search

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/locusdoc/locus/model"
)

// minRunCap is the longest run of consecutively matched characters a hit must
// contain. Queries shorter than the cap only need a run as long as the query.
const minRunCap = 3

// Hit is one fuzzy match: the corpus index of the line and its normalized
// score, where 0 is a perfect match and 1 the worst accepted value.
type Hit struct {
	Index int
	Score float64
}

// Matcher finds corpus lines approximately matching a query.
type Matcher interface {
	Match(query string) []Hit
}

// corpusSource adapts a corpus to the fuzzy engine, keyed on line text.
type corpusSource model.Corpus

func (s corpusSource) String(i int) string { return s[i].Text }
func (s corpusSource) Len() int            { return len(s) }

// fuzzyMatcher wraps the fuzzy engine with the ranking policy: normalized
// scoring, a threshold cut, a minimum matched-run length, and stable
// corpus-order tie-breaking. The engine itself matches anywhere in the text
// and collects every qualifying line, so no location or distance tuning is
// needed here.
type fuzzyMatcher struct {
	corpus    model.Corpus
	threshold float64
}

// NewMatcher builds a matcher over the corpus. threshold is in [0, 1]; lower
// is stricter, with 0 accepting only penalty-free matches.
func NewMatcher(corpus model.Corpus, threshold float64) Matcher {
	return &fuzzyMatcher{corpus: corpus, threshold: threshold}
}

func (m *fuzzyMatcher) Match(query string) []Hit {
	matches := fuzzy.FindFrom(query, corpusSource(m.corpus))

	minRun := minRunCap
	if n := len([]rune(query)); n < minRun {
		minRun = n
	}

	hits := make([]Hit, 0, len(matches))
	for _, match := range matches {
		if longestRun(match.MatchedIndexes) < minRun {
			continue
		}
		score := normalizeScore(match.Score, len(query))
		if score > m.threshold {
			continue
		}
		hits = append(hits, Hit{Index: match.Index, Score: score})
	}

	// Best score first; equal scores keep corpus order.
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score < hits[j].Score
		}
		return hits[i].Index < hits[j].Index
	})

	return hits
}

// normalizeScore maps the engine's raw score (higher is better, bounded below
// by -(queryLen^2)) onto [0, 1] with 0 best. Raw scores at or above zero are
// penalty-free matches and normalize to 0.
func normalizeScore(raw, queryLen int) float64 {
	if queryLen == 0 {
		return 1
	}
	if raw >= 0 {
		return 0
	}
	worst := float64(queryLen * queryLen)
	norm := float64(-raw) / worst
	if norm > 1 {
		norm = 1
	}
	return norm
}

// longestRun returns the length of the longest run of consecutive indexes.
func longestRun(indexes []int) int {
	longest, run := 0, 0
	for i, idx := range indexes {
		if i > 0 && idx == indexes[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
