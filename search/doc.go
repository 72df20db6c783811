// Package search ranks corpus lines against a query.
//
// The primary pass is typo-tolerant fuzzy matching over line text, scored so
// that 0 is a perfect match and filtered by a caller-supplied threshold in
// [0, 1] (lower is stricter). Matching is location-agnostic and exhaustive:
// a hit anywhere in a line counts with no positional decay, and every
// qualifying line is collected, not just the first few. When the fuzzy pass
// yields nothing, a deterministic case-insensitive substring scan over the
// whole corpus guarantees that an exactly-typed phrase is never silently
// missed because of a threshold misconfiguration.
package search
