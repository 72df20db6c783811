package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/locusdoc/locus/view"
)

// DrawText draws a text run into the canvas so that its baseline sits at the
// bottom of the given surface rectangle. This is a draft raster: a fixed
// bitmap face at whatever cell the rectangle dictates, enough to make
// highlight placement visible, not a faithful reproduction of the document's
// typography.
func DrawText(canvas *image.RGBA, r view.Rect, text string) {
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(r.Left))),
			Y: fixed.I(int(math.Round(r.Top + r.Height))),
		},
	}
	d.DrawString(text)
}

// DrawImage scales src into the destination rectangle of the canvas using
// bilinear interpolation. Used by image-backed decoders to materialize the
// page picture itself.
func DrawImage(canvas *image.RGBA, dst image.Rectangle, src image.Image) {
	xdraw.ApproxBiLinear.Scale(canvas, dst, src, src.Bounds(), xdraw.Src, nil)
}
