// Package highlight places transient highlights for matched lines. The
// decision of what rectangle to place is a pure function (Plan); applying it
// to a surface and scheduling its expiry is the Presenter's job, so the
// geometry can be tested without any rendering surface.
package highlight

import (
	"log/slog"
	"time"

	"github.com/locusdoc/locus/model"
	"github.com/locusdoc/locus/render"
	"github.com/locusdoc/locus/view"
)

// Fallback box for lines that carry no usable geometry, in document units.
const (
	FallbackWidth  = 50.0
	FallbackHeight = 12.0
)

// DefaultTTL is how long a highlight stays up unless superseded.
const DefaultTTL = 6 * time.Second

// Placement describes a highlight to apply: which page, where on its surface,
// and for how long.
type Placement struct {
	PageNumber int
	Rect       view.Rect
	TTL        time.Duration
}

// Plan computes the highlight placement for a matched line. Pure: no surface
// is touched. Lines without geometry get a fixed fallback box anchored at
// their position. A malformed viewport or box surfaces as a GeometryError
// from the view package.
func Plan(line model.Line, viewport view.Viewport, ttl time.Duration) (Placement, error) {
	box := line.BBox()
	if !line.HasGeometry() {
		box = model.NewBBox(line.X, line.Y, FallbackWidth, FallbackHeight)
	}

	rect, err := view.MapToSurface(box, viewport)
	if err != nil {
		return Placement{}, err
	}

	return Placement{PageNumber: line.PageNumber, Rect: rect, TTL: ttl}, nil
}

// Presenter applies highlight placements to surfaces.
type Presenter struct {
	ttl time.Duration
	log *slog.Logger
}

// NewPresenter creates a Presenter. A non-positive ttl means DefaultTTL.
func NewPresenter(ttl time.Duration, logger *slog.Logger) *Presenter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{ttl: ttl, log: logger}
}

// Present places a highlight for line on the page's surface, replacing any
// highlight already active there, and schedules its removal after the TTL
// unless a later Present on the same surface supersedes it first.
//
// Geometry failures are non-fatal: they are logged and the surface is left
// without a highlight, so navigation to the page still succeeds. The return
// value reports whether a highlight was placed.
func (p *Presenter) Present(surface *render.Surface, viewport view.Viewport, line model.Line) bool {
	placement, err := Plan(line, viewport, p.ttl)
	if err != nil {
		p.log.Warn("highlight skipped",
			"page", line.PageNumber,
			"error", err,
		)
		return false
	}

	gen := surface.SetHighlight(placement.Rect)
	time.AfterFunc(placement.TTL, func() {
		surface.ExpireHighlight(gen)
	})
	return true
}
