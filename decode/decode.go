// Package decode defines the document decoder collaborators: a Document
// exposes its pages, and each Page yields positioned text fragments, a
// viewport for a given scale, and a draft raster of itself onto a surface.
//
// Concrete decoders live in subpackages (pdfdoc, hocrdoc, ocrdoc); this
// package also sniffs which of them a byte stream belongs to and carries the
// input-side error taxonomy.
package decode

import (
	"context"
	"fmt"

	"github.com/locusdoc/locus/render"
	"github.com/locusdoc/locus/text"
	"github.com/locusdoc/locus/view"
)

// Document is a decoded, immutable document. A Document is never mutated
// after opening; a new file means a new Document.
type Document interface {
	// NumPages returns the page count.
	NumPages() int

	// Page returns the 1-indexed page n.
	Page(n int) (Page, error)

	// Close releases decoder resources.
	Close() error
}

// Page is one decoded page.
type Page interface {
	// Number returns the 1-indexed page number.
	Number() int

	// TextContent returns the page's positioned text fragments in reading
	// order (left-to-right within a row, rows top-to-bottom).
	TextContent(ctx context.Context) ([]text.Fragment, error)

	// Viewport returns the document-to-surface mapping at the given scale.
	Viewport(scale float64) view.Viewport

	// Render materializes the page onto the surface.
	Render(ctx context.Context, s *render.Surface) error
}

// InvalidInputError rejects input before any session state changes: the file
// is not a media type any decoder accepts.
type InvalidInputError struct {
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
}

// DecodeError reports that a decoder could not parse accepted input. The
// failure is terminal for the load attempt.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
