// Package extract builds the searchable corpus: it walks a decoded document
// page by page, reconstructs each page's logical lines, and concatenates them
// into one flat ordered collection.
package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/locusdoc/locus/decode"
	"github.com/locusdoc/locus/model"
	"github.com/locusdoc/locus/text"
)

// ExtractionError reports that a page's text content could not be obtained.
// It aborts the whole corpus build; no partial corpus is retained.
type ExtractionError struct {
	PageNumber int
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract page %d: %v", e.PageNumber, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Builder orchestrates per-page extraction across a whole document.
type Builder struct {
	rec *text.Reconstructor
	log *slog.Logger
}

// NewBuilder creates a Builder using the given row-merge tolerance in
// document units; a non-positive tolerance means the default.
func NewBuilder(tolerance float64, logger *slog.Logger) *Builder {
	rec := text.NewReconstructor()
	if tolerance > 0 {
		rec.Tolerance = tolerance
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{rec: rec, log: logger}
}

// Build extracts the corpus from doc. Pages are processed strictly in
// increasing page-number order and each page's reconstructed lines are
// appended in order, so page order is the corpus's sort key and within-page
// order is preserved. Any page whose text cannot be retrieved fails the whole
// build with an ExtractionError rather than producing a degraded result.
func (b *Builder) Build(ctx context.Context, doc decode.Document) (model.Corpus, error) {
	var corpus model.Corpus

	for n := 1; n <= doc.NumPages(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := doc.Page(n)
		if err != nil {
			return nil, &ExtractionError{PageNumber: n, Err: err}
		}

		fragments, err := page.TextContent(ctx)
		if err != nil {
			return nil, &ExtractionError{PageNumber: n, Err: err}
		}

		lines := b.rec.Reconstruct(fragments, n)
		b.log.Debug("extracted page", "page", n, "fragments", len(fragments), "lines", len(lines))
		corpus = append(corpus, lines...)
	}

	b.log.Info("corpus built", "pages", doc.NumPages(), "lines", len(corpus))
	return corpus, nil
}
