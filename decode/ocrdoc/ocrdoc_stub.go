//go:build !ocr

// Package ocrdoc decodes raster images (scans, photos of pages) into
// positioned text fragments by running them through the Tesseract OCR engine.
//
// This is the stub implementation used when the "ocr" build tag is not set;
// Open reports ErrOCRNotEnabled. To enable OCR, rebuild with the "ocr" build
// tag and Tesseract installed:
//
//	go build -tags ocr
package ocrdoc

import (
	"errors"

	"github.com/locusdoc/locus/decode"
)

// ErrOCRNotEnabled is returned when image input is opened but OCR support was
// not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Open reports that OCR support is not enabled.
func Open(path string) (decode.Document, error) {
	return nil, ErrOCRNotEnabled
}
