package text

import (
	"math"

	"github.com/locusdoc/locus/model"
)

// fallbackHeight is assumed for fragments that carry neither an explicit
// height nor a usable vertical scale in their transform.
const fallbackHeight = 10.0

// Fragment is a single run of text at a specific position and size, as
// emitted by a document decoder before any line-level grouping. It is
// immutable input.
type Fragment struct {
	Text string

	// Transform positions the fragment in document coordinate space. The
	// origin is (Transform[4], Transform[5]); Transform[3] carries the
	// vertical scale, used to estimate height when Height is unset.
	Transform model.Matrix

	Width float64

	// Height of the fragment. Zero or negative means unknown; use
	// EffectiveHeight.
	Height float64
}

// Origin returns the fragment's anchor point in document coordinate space.
func (f Fragment) Origin() model.Point {
	return model.Point{X: f.Transform[4], Y: f.Transform[5]}
}

// EffectiveHeight returns the fragment height, deriving it from the
// transform's vertical scale (with a fixed floor) when unset.
func (f Fragment) EffectiveHeight() float64 {
	if f.Height > 0 {
		return f.Height
	}
	return math.Max(math.Abs(f.Transform[3]), fallbackHeight)
}

// BBox returns the fragment's bounding box in document coordinate space.
func (f Fragment) BBox() model.BBox {
	o := f.Origin()
	return model.NewBBox(o.X, o.Y, f.Width, f.EffectiveHeight())
}
