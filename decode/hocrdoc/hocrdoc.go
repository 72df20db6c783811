// Package hocrdoc decodes hOCR files (the HTML-based OCR output format) into
// positioned text fragments. Word elements carry pixel bounding boxes in
// their title attributes; the coordinate space has Y growing downward from
// the page's top-left corner.
package hocrdoc

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/locusdoc/locus/decode"
	"github.com/locusdoc/locus/model"
	"github.com/locusdoc/locus/render"
	"github.com/locusdoc/locus/text"
	"github.com/locusdoc/locus/view"
)

// Document is a decoded hOCR file.
type Document struct {
	pages []*page
}

var _ decode.Document = (*Document)(nil)

// Open reads and parses the hOCR file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &decode.DecodeError{Path: path, Err: err}
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, &decode.DecodeError{Path: path, Err: err}
	}
	return doc, nil
}

// Parse decodes raw hOCR bytes.
func Parse(data []byte) (*Document, error) {
	decoded, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	walkElements(root, func(n *html.Node) {
		if !hasClass(n, "ocr_page") {
			return
		}
		p := &page{number: len(doc.pages) + 1}
		if box, ok := bboxFromTitle(attr(n, "title")); ok {
			p.width = box.Width
			p.height = box.Height
		}
		collectWords(n, p)
		doc.pages = append(doc.pages, p)
	})

	if len(doc.pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found")
	}
	return doc, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the 1-indexed page n.
func (d *Document) Page(n int) (decode.Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// Close is a no-op; the document is fully in memory.
func (d *Document) Close() error {
	return nil
}

type page struct {
	number    int
	width     float64
	height    float64
	fragments []text.Fragment
}

func (p *page) Number() int {
	return p.number
}

// Viewport returns the document-to-surface mapping at scale. hOCR pixel
// coordinates already grow downward, so no axis flip is needed.
func (p *page) Viewport(scale float64) view.Viewport {
	w, h := p.width, p.height
	if w <= 0 || h <= 0 {
		w, h = fallbackPageSize(p.fragments)
	}
	return view.NewTopDownViewport(w, h, scale)
}

func (p *page) TextContent(ctx context.Context) ([]text.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.fragments, nil
}

// Render draws the page's words onto the surface as a draft raster.
func (p *page) Render(ctx context.Context, s *render.Surface) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	vp := s.Viewport()
	for _, f := range p.fragments {
		rect, err := view.MapToSurface(f.BBox(), vp)
		if err != nil {
			continue
		}
		render.DrawText(s.Canvas(), rect, f.Text)
	}
	return nil
}

// collectWords turns every ocrx_word under the page node into a fragment, in
// document order, which for hOCR is reading order.
func collectWords(pageNode *html.Node, p *page) {
	walkElements(pageNode, func(n *html.Node) {
		if !hasClass(n, "ocrx_word") {
			return
		}
		word := strings.TrimSpace(nodeText(n))
		if word == "" {
			return
		}
		box, ok := bboxFromTitle(attr(n, "title"))
		if !ok {
			return
		}
		p.fragments = append(p.fragments, text.Fragment{
			Text:      word,
			Transform: model.Matrix{1, 0, 0, box.Height, box.X, box.Y},
			Width:     box.Width,
			Height:    box.Height,
		})
	})
}

// toUTF8 re-decodes Latin-1 content when the charset declaration says the
// file is not UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	head := strings.ToLower(string(data[:minInt(len(data), 1024)]))
	if idx := strings.Index(head, "charset="); idx >= 0 {
		rest := strings.FieldsFunc(head[idx+len("charset="):], func(r rune) bool {
			return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' '
		})
		var enc string
		if len(rest) > 0 {
			enc = rest[0]
		}
		if enc != "" && enc != "utf-8" {
			decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", enc, err)
			}
			return decoded, nil
		}
	}
	return data, nil
}

// bboxFromTitle extracts the bbox property of an hOCR title attribute, e.g.
// "bbox 100 200 300 400; x_wconf 95".
func bboxFromTitle(title string) (model.BBox, bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 5 || fields[0] != "bbox" {
			continue
		}
		x1, err1 := strconv.ParseFloat(fields[1], 64)
		y1, err2 := strconv.ParseFloat(fields[2], 64)
		x2, err3 := strconv.ParseFloat(fields[3], 64)
		y2, err4 := strconv.ParseFloat(fields[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return model.BBox{}, false
		}
		return model.NewBBox(x1, y1, x2-x1, y2-y1), true
	}
	return model.BBox{}, false
}

// walkElements visits every element node under n, including n itself.
func walkElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// fallbackPageSize infers a page size from the word boxes when the page
// element carries no bbox.
func fallbackPageSize(fragments []text.Fragment) (w, h float64) {
	for _, f := range fragments {
		b := f.BBox()
		if r := b.Right(); r > w {
			w = r
		}
		if bottom := b.Y + b.Height; bottom > h {
			h = bottom
		}
	}
	if w <= 0 || h <= 0 {
		w, h = 1000, 1400
	}
	return w, h
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
