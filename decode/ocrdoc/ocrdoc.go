//go:build ocr

// Package ocrdoc decodes raster images (scans, photos of pages) into
// positioned text fragments by running them through the Tesseract OCR engine.
// Coordinates are image pixels with Y growing downward.
//
// Tesseract must be installed on the system and the package built with the
// "ocr" build tag; without the tag a stub that reports ErrOCRNotEnabled is
// compiled instead.
package ocrdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/locusdoc/locus/decode"
	"github.com/locusdoc/locus/model"
	"github.com/locusdoc/locus/render"
	"github.com/locusdoc/locus/text"
	"github.com/locusdoc/locus/view"
)

// ErrOCRNotEnabled is never returned by this build; it exists so callers can
// test for it regardless of build tags.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Document is a single-page document recognized from a raster image.
type Document struct {
	img       image.Image
	fragments []text.Fragment
}

var _ decode.Document = (*Document)(nil)

// Open recognizes the image at path. The whole recognition runs here, once;
// pages only serve the cached result afterwards.
func Open(path string) (decode.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &decode.DecodeError{Path: path, Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &decode.DecodeError{Path: path, Err: fmt.Errorf("decode image: %w", err)}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, &decode.DecodeError{Path: path, Err: fmt.Errorf("set image: %w", err)}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, &decode.DecodeError{Path: path, Err: fmt.Errorf("recognize: %w", err)}
	}

	doc := &Document{img: img}
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		w := float64(b.Box.Dx())
		h := float64(b.Box.Dy())
		doc.fragments = append(doc.fragments, text.Fragment{
			Text:      b.Word,
			Transform: model.Matrix{1, 0, 0, h, float64(b.Box.Min.X), float64(b.Box.Min.Y)},
			Width:     w,
			Height:    h,
		})
	}

	return doc, nil
}

// NumPages returns 1; an image is always a single page.
func (d *Document) NumPages() int {
	return 1
}

// Page returns the single page.
func (d *Document) Page(n int) (decode.Page, error) {
	if n != 1 {
		return nil, fmt.Errorf("page %d out of range [1, 1]", n)
	}
	return (*page)(d), nil
}

// Close is a no-op; recognition happened at Open.
func (d *Document) Close() error {
	return nil
}

type page Document

func (p *page) Number() int {
	return 1
}

// Viewport returns the image-to-surface mapping at scale. Image pixels grow
// downward, so no axis flip is needed.
func (p *page) Viewport(scale float64) view.Viewport {
	b := p.img.Bounds()
	return view.NewTopDownViewport(float64(b.Dx()), float64(b.Dy()), scale)
}

func (p *page) TextContent(ctx context.Context) ([]text.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.fragments, nil
}

// Render scales the source image onto the surface; unlike the text-only
// decoders, the page picture itself is available here.
func (p *page) Render(ctx context.Context, s *render.Surface) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	render.DrawImage(s.Canvas(), s.Canvas().Bounds(), p.img)
	return nil
}
