package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/locusdoc/locus/view"
)

// highlightColor is the translucent fill composited over a highlighted region.
var highlightColor = color.NRGBA{R: 255, G: 215, B: 0, A: 110}

// Surface is one page materialized to pixels, plus that page's transient
// highlight state. At most one highlight is active per surface; placing a new
// one replaces the previous one.
type Surface struct {
	pageNumber int
	viewport   view.Viewport

	mu        sync.Mutex
	canvas    *image.RGBA
	highlight *view.Rect
	gen       int
}

// NewSurface allocates a white surface sized to the viewport.
func NewSurface(pageNumber int, viewport view.Viewport) *Surface {
	w := int(math.Ceil(viewport.Width))
	h := int(math.Ceil(viewport.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, xdraw.Src)

	return &Surface{
		pageNumber: pageNumber,
		viewport:   viewport,
		canvas:     canvas,
	}
}

// PageNumber returns the 1-indexed page this surface renders.
func (s *Surface) PageNumber() int {
	return s.pageNumber
}

// Viewport returns the viewport the surface was materialized with.
func (s *Surface) Viewport() view.Viewport {
	return s.viewport
}

// Canvas exposes the backing pixels for decoders to render into. Decoders
// draw during materialization, before the surface is shared, so no locking is
// imposed on them.
func (s *Surface) Canvas() *image.RGBA {
	return s.canvas
}

// SetHighlight replaces any active highlight with the given rectangle and
// returns a generation token. The token lets a scheduled expiry detect that
// it has been superseded.
func (s *Surface) SetHighlight(r view.Rect) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlight = &r
	s.gen++
	return s.gen
}

// ExpireHighlight clears the highlight only if gen still identifies the
// active one. A highlight replaced by a later SetHighlight is left alone.
func (s *Surface) ExpireHighlight(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.highlight = nil
	}
}

// ClearHighlight unconditionally removes any active highlight.
func (s *Surface) ClearHighlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlight = nil
	s.gen++
}

// Highlight returns the active highlight rectangle, if any.
func (s *Surface) Highlight() (view.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.highlight == nil {
		return view.Rect{}, false
	}
	return *s.highlight, true
}

// Snapshot composites the page pixels with the active highlight, if any, and
// returns the result. The backing canvas is not modified, so highlights can
// expire without re-rendering the page.
func (s *Surface) Snapshot() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := image.NewRGBA(s.canvas.Bounds())
	xdraw.Copy(out, image.Point{}, s.canvas, s.canvas.Bounds(), xdraw.Src, nil)

	if s.highlight != nil {
		r := *s.highlight
		box := image.Rect(
			int(math.Floor(r.Left)),
			int(math.Floor(r.Top)),
			int(math.Ceil(r.Left+r.Width)),
			int(math.Ceil(r.Top+r.Height)),
		).Intersect(out.Bounds())
		xdraw.Draw(out, box, image.NewUniform(highlightColor), image.Point{}, xdraw.Over)
	}

	return out
}

// RenderError reports that a specific page failed to materialize. The failure
// is page-local: other pages and the corpus are unaffected.
type RenderError struct {
	PageNumber int
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render page %d: %v", e.PageNumber, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
