package model

import "math"

// Point represents a 2D point in document coordinate space.
type Point struct {
	X, Y float64
}

// BBox represents a bounding box (rectangle) in document coordinate space.
// X, Y anchor the box at the corner the producing decoder uses as its origin;
// Width and Height extend from there.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Corners returns the two opposite corners of the box.
func (b BBox) Corners() (Point, Point) {
	return Point{X: b.X, Y: b.Y}, Point{X: b.X + b.Width, Y: b.Y + b.Height}
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsFinite returns true if all coordinates are finite numbers.
func (b BBox) IsFinite() bool {
	return isFinite(b.X) && isFinite(b.Y) && isFinite(b.Width) && isFinite(b.Height)
}

// Matrix represents a 2D affine transformation matrix in the PDF convention:
// [a b c d e f], where a point (x, y) maps to (a*x+c*y+e, b*x+d*y+f).
// The translation components are e=Matrix[4] and f=Matrix[5].
type Matrix [6]float64

// Identity returns an identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Transform applies the matrix transformation to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply multiplies two matrices. The receiver is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Determinant returns the determinant of the linear part of the matrix.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse matrix. ok is false when the matrix is
// degenerate (zero determinant) or contains non-finite values.
func (m Matrix) Invert() (Matrix, bool) {
	if !m.IsFinite() {
		return Matrix{}, false
	}
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, false
	}
	inv := Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
	}
	inv[4] = -(m[4]*inv[0] + m[5]*inv[2])
	inv[5] = -(m[4]*inv[1] + m[5]*inv[3])
	return inv, true
}

// IsFinite returns true if all matrix entries are finite numbers.
func (m Matrix) IsFinite() bool {
	for _, v := range m {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// IsIdentity returns true if the matrix is an identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
