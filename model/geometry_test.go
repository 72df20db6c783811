package model

import (
	"math"
	"testing"
)

func TestMatrixTransform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{
			name: "identity",
			m:    Identity(),
			in:   Point{X: 3, Y: 4},
			want: Point{X: 3, Y: 4},
		},
		{
			name: "translate",
			m:    Translate(10, -5),
			in:   Point{X: 1, Y: 2},
			want: Point{X: 11, Y: -3},
		},
		{
			name: "scale",
			m:    Scale(2, 3),
			in:   Point{X: 4, Y: 5},
			want: Point{X: 8, Y: 15},
		},
		{
			name: "flip y with offset",
			m:    Matrix{1, 0, 0, -1, 0, 100},
			in:   Point{X: 10, Y: 30},
			want: Point{X: 10, Y: 70},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Transform(tt.in)
			if got != tt.want {
				t.Errorf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		ok   bool
	}{
		{name: "identity", m: Identity(), ok: true},
		{name: "scale and translate", m: Matrix{2, 0, 0, -2, 5, 300}, ok: true},
		{name: "degenerate", m: Matrix{0, 0, 0, 0, 1, 1}, ok: false},
		{name: "non-finite", m: Matrix{math.NaN(), 0, 0, 1, 0, 0}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if ok != tt.ok {
				t.Fatalf("Invert() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}

			// Applying m then its inverse must recover the original point.
			p := Point{X: 7.5, Y: -2.25}
			back := inv.Transform(tt.m.Transform(p))
			if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
				t.Errorf("round trip = %v, want %v", back, p)
			}
		})
	}
}

func TestBBoxCorners(t *testing.T) {
	b := NewBBox(10, 20, 30, 40)
	p1, p2 := b.Corners()
	if p1 != (Point{X: 10, Y: 20}) || p2 != (Point{X: 40, Y: 60}) {
		t.Errorf("Corners() = %v, %v", p1, p2)
	}
}

func TestBBoxIsEmpty(t *testing.T) {
	if !NewBBox(0, 0, 0, 10).IsEmpty() {
		t.Error("zero-width box should be empty")
	}
	if NewBBox(0, 0, 1, 1).IsEmpty() {
		t.Error("1x1 box should not be empty")
	}
}

func TestLineBBox(t *testing.T) {
	l := Line{Text: "hello", PageNumber: 1, X: 1, Y: 2, Width: 3, Height: 4}
	if got := l.BBox(); got != NewBBox(1, 2, 3, 4) {
		t.Errorf("BBox() = %v", got)
	}
	if !l.HasGeometry() {
		t.Error("line with box should have geometry")
	}
	if (Line{Text: "x"}).HasGeometry() {
		t.Error("line without box should not have geometry")
	}
}
