package decode

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Format identifies which decoder a byte stream belongs to.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatHOCR
	FormatImage
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatHOCR:
		return "hocr"
	case FormatImage:
		return "image"
	default:
		return "unknown"
	}
}

// sniffLen is how much of the file DetectFormatFile reads. hOCR class markers
// sit well within the head of any real hOCR file.
const sniffLen = 4096

// DetectFormat sniffs the decoder format from the head of a byte stream.
func DetectFormat(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return FormatPDF
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")),
		bytes.HasPrefix(head, []byte("\xff\xd8\xff")):
		return FormatImage
	case isHOCR(head):
		return FormatHOCR
	default:
		return FormatUnknown
	}
}

// DetectFormatFile sniffs the format of the file at path.
func DetectFormatFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("read %s: %w", path, err)
	}
	return DetectFormat(head[:n]), nil
}

// isHOCR recognizes hOCR output: HTML markup carrying the ocr_page class or
// the ocr-system meta tag.
func isHOCR(head []byte) bool {
	lowered := bytes.ToLower(head)
	if !bytes.Contains(lowered, []byte("<html")) && !bytes.Contains(lowered, []byte("<!doctype html")) {
		return false
	}
	return bytes.Contains(lowered, []byte("ocr_page")) || bytes.Contains(lowered, []byte("ocr-system"))
}
