// Package pdfdoc decodes PDF files into positioned text fragments. Input is
// validated with pdfcpu before parsing; positioned text runs come from the
// ledongthuc/pdf content reader. The PDF coordinate space has Y growing
// upward, which the viewport accounts for.
package pdfdoc

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/locusdoc/locus/decode"
	"github.com/locusdoc/locus/model"
	"github.com/locusdoc/locus/render"
	"github.com/locusdoc/locus/text"
	"github.com/locusdoc/locus/view"
)

// Default page size (US Letter, points) when a page has no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// rowEps is the vertical jitter tolerated when ordering raw text runs into
// reading order.
const rowEps = 2.0

// wordGapFactor decides word boundaries when coalescing raw runs: a
// horizontal gap wider than this fraction of the font size starts a new
// fragment, narrower gaps glue character-level runs into one word.
const wordGapFactor = 0.3

// Document is a decoded PDF.
type Document struct {
	path   string
	file   *os.File
	reader *lpdf.Reader
}

var _ decode.Document = (*Document)(nil)

// Open validates and opens the PDF at path.
func Open(path string) (*Document, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, &decode.DecodeError{Path: path, Err: fmt.Errorf("validate: %w", err)}
	}

	file, reader, err := lpdf.Open(path)
	if err != nil {
		return nil, &decode.DecodeError{Path: path, Err: err}
	}

	return &Document{path: path, file: file, reader: reader}, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Page returns the 1-indexed page n.
func (d *Document) Page(n int) (decode.Page, error) {
	if n < 1 || n > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, d.reader.NumPage())
	}

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d is missing from the page tree", n)
	}

	w, h := mediaBoxSize(p)
	return &page{path: d.path, p: p, number: n, width: w, height: h}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

type page struct {
	path   string
	p      lpdf.Page
	number int
	width  float64
	height float64
}

func (pg *page) Number() int {
	return pg.number
}

// Viewport returns the document-to-surface mapping at scale. PDF Y grows
// upward, so the viewport flips the axis.
func (pg *page) Viewport(scale float64) view.Viewport {
	return view.NewViewport(pg.width, pg.height, scale)
}

// TextContent extracts the page's positioned text runs, orders them into
// reading order, and coalesces character-level runs into word fragments.
// The content reader panics on malformed streams, so the extraction is
// fenced with a recover and surfaced as an error.
func (pg *page) TextContent(ctx context.Context) (fragments []text.Fragment, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			fragments = nil
			err = &decode.DecodeError{Path: pg.path, Err: fmt.Errorf("page %d content: %v", pg.number, r)}
		}
	}()

	runs := pg.p.Content().Text
	sortReadingOrder(runs)

	return coalesceRuns(runs), nil
}

// Render draws the page's text fragments onto the surface as a draft raster.
func (pg *page) Render(ctx context.Context, s *render.Surface) error {
	fragments, err := pg.TextContent(ctx)
	if err != nil {
		return err
	}

	vp := s.Viewport()
	for _, f := range fragments {
		rect, err := view.MapToSurface(f.BBox(), vp)
		if err != nil {
			continue
		}
		render.DrawText(s.Canvas(), rect, f.Text)
	}
	return nil
}

// sortReadingOrder arranges raw runs top-to-bottom (descending Y, since PDF Y
// grows upward) and left-to-right within a row, tolerating small vertical
// jitter between runs of the same visual row.
func sortReadingOrder(runs []lpdf.Text) {
	sort.SliceStable(runs, func(i, j int) bool {
		if math.Abs(runs[i].Y-runs[j].Y) > rowEps {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})
}

// coalesceRuns glues adjacent same-row runs separated by sub-word gaps into
// single fragments. Character-level PDFs emit one run per glyph; joining them
// here keeps the line reconstructor's space-per-fragment rule from spelling
// words apart.
func coalesceRuns(runs []lpdf.Text) []text.Fragment {
	var fragments []text.Fragment
	var cur *text.Fragment
	var curEnd float64

	flush := func() {
		if cur != nil {
			fragments = append(fragments, *cur)
			cur = nil
		}
	}

	for _, run := range runs {
		if run.S == "" {
			continue
		}

		size := run.FontSize
		if size <= 0 {
			size = fallbackFontSize
		}

		if cur != nil {
			sameRow := math.Abs(run.Y-cur.Transform[5]) <= rowEps
			gap := run.X - curEnd
			if sameRow && gap > -size && gap < size*wordGapFactor {
				cur.Text += run.S
				if end := run.X + run.W; end > curEnd {
					curEnd = end
					cur.Width = curEnd - cur.Transform[4]
				}
				if size > cur.Height {
					cur.Height = size
				}
				continue
			}
		}

		flush()
		cur = &text.Fragment{
			Text:      run.S,
			Transform: model.Matrix{size, 0, 0, size, run.X, run.Y},
			Width:     run.W,
			Height:    size,
		}
		curEnd = run.X + run.W
	}
	flush()

	return fragments
}

const fallbackFontSize = 12.0

// mediaBoxSize reads the page's MediaBox, falling back to US Letter when it
// is absent or malformed. Value lookups panic on some malformed files, hence
// the recover fence.
func mediaBoxSize(p lpdf.Page) (w, h float64) {
	w, h = defaultPageWidth, defaultPageHeight

	defer func() {
		if recover() != nil {
			w, h = defaultPageWidth, defaultPageHeight
		}
	}()

	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return w, h
	}

	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()

	bw := math.Abs(x1 - x0)
	bh := math.Abs(y1 - y0)
	if bw > 0 && bh > 0 {
		return bw, bh
	}
	return w, h
}
