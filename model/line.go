package model

// Line is a reconstructed row of text on one page, merging one or more
// positioned fragments believed to lie on the same visual line.
//
// X and Y anchor the bounding box at the first merged fragment's origin;
// Width reaches to the rightmost merged fragment's right edge and Height is
// the tallest merged fragment's height. Text is whitespace-normalized and
// never empty. Lines are created once per document load and never mutated.
type Line struct {
	Text       string
	PageNumber int // 1-indexed
	X          float64
	Y          float64
	Width      float64
	Height     float64
}

// BBox returns the line's bounding box in document coordinate space.
func (l Line) BBox() BBox {
	return BBox{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
}

// HasGeometry reports whether the line carries a usable bounding box.
func (l Line) HasGeometry() bool {
	return l.Width > 0 && l.Height > 0
}

// Corpus is the full ordered set of logical lines across a document: pages in
// increasing order, within-page lines in reconstruction order. It is replaced
// wholesale when a new document is loaded and never mutated in place.
type Corpus []Line
