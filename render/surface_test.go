package render

import (
	"image"
	"testing"

	"github.com/locusdoc/locus/view"
)

func newTestSurface() *Surface {
	return NewSurface(1, view.NewTopDownViewport(100, 80, 1))
}

func TestNewSurfaceDimensions(t *testing.T) {
	s := NewSurface(2, view.NewTopDownViewport(200, 100, 1.5))
	if s.PageNumber() != 2 {
		t.Errorf("PageNumber() = %d", s.PageNumber())
	}
	want := image.Rect(0, 0, 300, 150)
	if got := s.Canvas().Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestHighlightReplacement(t *testing.T) {
	s := newTestSurface()

	first := view.Rect{Left: 10, Top: 10, Width: 20, Height: 5}
	second := view.Rect{Left: 40, Top: 30, Width: 15, Height: 8}

	s.SetHighlight(first)
	s.SetHighlight(second)

	got, ok := s.Highlight()
	if !ok {
		t.Fatal("no active highlight")
	}
	if got != second {
		t.Errorf("active highlight = %+v, want %+v", got, second)
	}
}

func TestExpireHighlightGenerationGuard(t *testing.T) {
	s := newTestSurface()

	gen1 := s.SetHighlight(view.Rect{Left: 1, Top: 1, Width: 2, Height: 2})
	s.SetHighlight(view.Rect{Left: 5, Top: 5, Width: 2, Height: 2})

	// Expiry of the superseded highlight must not clear the new one.
	s.ExpireHighlight(gen1)
	if _, ok := s.Highlight(); !ok {
		t.Fatal("stale expiry cleared the active highlight")
	}

	gen2 := s.SetHighlight(view.Rect{Left: 9, Top: 9, Width: 2, Height: 2})
	s.ExpireHighlight(gen2)
	if _, ok := s.Highlight(); ok {
		t.Fatal("current-generation expiry did not clear the highlight")
	}
}

func TestSnapshotCompositesHighlight(t *testing.T) {
	s := newTestSurface()
	s.SetHighlight(view.Rect{Left: 10, Top: 10, Width: 20, Height: 10})

	snap := s.Snapshot()

	inR, inG, inB, _ := snap.At(15, 15).RGBA()
	outR, outG, outB, _ := snap.At(60, 60).RGBA()
	if inR == outR && inG == outG && inB == outB {
		t.Error("highlighted pixel matches unhighlighted pixel")
	}

	// The backing canvas stays pristine so expiry needs no re-render.
	cR, cG, cB, _ := s.Canvas().At(15, 15).RGBA()
	if cR != outR || cG != outG || cB != outB {
		t.Error("Snapshot modified the backing canvas")
	}
}

func TestSnapshotWithoutHighlight(t *testing.T) {
	s := newTestSurface()
	snap := s.Snapshot()
	r, g, b, _ := snap.At(5, 5).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("blank surface pixel = %v,%v,%v, want white", r, g, b)
	}
}
