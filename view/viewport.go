// Package view maps rectangles from document coordinate space into
// rendered-surface pixel space. A Viewport carries the scale and axis
// orientation as a single affine transform, so documents whose Y axis grows
// upward (PDF) and those whose Y axis grows downward (hOCR, images) are
// handled by the same mapping code.
package view

import (
	"fmt"

	"github.com/locusdoc/locus/model"
)

// Viewport describes how document coordinates project onto a rendered
// surface: a scale factor plus the surface's pixel dimensions, combined into
// one document-to-surface transform.
type Viewport struct {
	Scale     float64
	Width     float64 // surface width in pixels
	Height    float64 // surface height in pixels
	Transform model.Matrix
}

// NewViewport builds a viewport for a page whose document-space Y axis grows
// upward (the PDF convention): the transform flips Y so that the document's
// top edge lands at surface row zero.
func NewViewport(pageWidth, pageHeight, scale float64) Viewport {
	return Viewport{
		Scale:     scale,
		Width:     pageWidth * scale,
		Height:    pageHeight * scale,
		Transform: model.Matrix{scale, 0, 0, -scale, 0, pageHeight * scale},
	}
}

// NewTopDownViewport builds a viewport for a page whose document-space Y axis
// already grows downward (hOCR, raster images): plain scaling, no flip.
func NewTopDownViewport(pageWidth, pageHeight, scale float64) Viewport {
	return Viewport{
		Scale:     scale,
		Width:     pageWidth * scale,
		Height:    pageHeight * scale,
		Transform: model.Matrix{scale, 0, 0, scale, 0, 0},
	}
}

// Invert returns the surface-to-document viewport, used to map a surface
// rectangle back into document space.
func (v Viewport) Invert() (Viewport, error) {
	inv, ok := v.Transform.Invert()
	if !ok {
		return Viewport{}, &GeometryError{Reason: "viewport transform is not invertible"}
	}
	scale := 0.0
	if v.Scale != 0 {
		scale = 1 / v.Scale
	}
	return Viewport{
		Scale:     scale,
		Width:     v.Width * scale,
		Height:    v.Height * scale,
		Transform: inv,
	}, nil
}

// valid reports whether the viewport can meaningfully map coordinates.
func (v Viewport) valid() bool {
	return v.Transform.IsFinite() && v.Transform.Determinant() != 0
}

// Rect is an axis-aligned rectangle in rendered-surface pixel space, anchored
// at its top-left corner.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// MapToSurface converts a document-space bounding box into a surface-space
// rectangle. Both corners of the box are transformed; the result's left/top
// are the per-axis minima of the transformed corners and its width/height
// their per-axis absolute differences, which keeps the mapping correct under
// axis flips rather than assuming a fixed orientation.
//
// It is a pure function of box and viewport. A malformed viewport or a
// non-finite box yields a GeometryError.
func MapToSurface(box model.BBox, viewport Viewport) (Rect, error) {
	if !viewport.valid() {
		return Rect{}, &GeometryError{Reason: "malformed viewport transform"}
	}
	if !box.IsFinite() {
		return Rect{}, &GeometryError{Reason: "non-finite bounding box"}
	}

	c1, c2 := box.Corners()
	p1 := viewport.Transform.Transform(c1)
	p2 := viewport.Transform.Transform(c2)

	return Rect{
		Left:   minF(p1.X, p2.X),
		Top:    minF(p1.Y, p2.Y),
		Width:  absF(p2.X - p1.X),
		Height: absF(p2.Y - p1.Y),
	}, nil
}

// GeometryError indicates a box or viewport that cannot be mapped. Highlight
// placement treats it as non-fatal and degrades to no highlight.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry mapping failed: %s", e.Reason)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
