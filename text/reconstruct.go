package text

import (
	"math"
	"strings"

	"github.com/locusdoc/locus/model"
)

// DefaultTolerance is the vertical distance, in document units, within which
// two fragments are considered part of the same visual row.
const DefaultTolerance = 3.0

// Reconstructor folds an ordered fragment stream into logical lines.
type Reconstructor struct {
	// Tolerance is the same-row vertical distance in document units.
	Tolerance float64
}

// NewReconstructor creates a Reconstructor with the default row tolerance.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{Tolerance: DefaultTolerance}
}

// Reconstruct converts an ordered sequence of fragments from one page into an
// ordered sequence of logical lines with merged bounding geometry.
//
// Fragments are consumed in decoder order. A fragment whose Y position is
// within the tolerance of the current line's Y continues that line: its text
// is appended with a single space, the line's right edge extends to the
// farther of the two right edges, and its height to the taller of the two.
// Any other fragment flushes the current line and starts a new one. A single
// oversized fragment is never split.
//
// Flushed lines are whitespace-normalized (runs collapsed to one space,
// ends trimmed); lines whose text normalizes to empty are dropped.
func (r *Reconstructor) Reconstruct(fragments []Fragment, pageNumber int) []model.Line {
	tolerance := r.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var lines []model.Line
	var cur *model.Line

	flush := func() {
		if cur == nil {
			return
		}
		if text := normalizeText(cur.Text); text != "" {
			cur.Text = text
			lines = append(lines, *cur)
		}
		cur = nil
	}

	for _, frag := range fragments {
		o := frag.Origin()
		w := frag.Width
		h := frag.EffectiveHeight()

		if cur != nil && math.Abs(o.Y-cur.Y) <= tolerance {
			cur.Text += " " + frag.Text
			cur.Width = math.Max(cur.X+cur.Width, o.X+w) - cur.X
			cur.Height = math.Max(cur.Height, h)
			continue
		}

		flush()
		cur = &model.Line{
			Text:       frag.Text,
			PageNumber: pageNumber,
			X:          o.X,
			Y:          o.Y,
			Width:      w,
			Height:     h,
		}
	}
	flush()

	return lines
}

// normalizeText collapses whitespace runs to single spaces and trims the ends.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
