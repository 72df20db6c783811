package pdfdoc

import (
	"testing"

	lpdf "github.com/ledongthuc/pdf"
)

func run(s string, x, y, w, size float64) lpdf.Text {
	return lpdf.Text{S: s, X: x, Y: y, W: w, FontSize: size}
}

func TestSortReadingOrder(t *testing.T) {
	// PDF Y grows upward: higher Y is nearer the page top.
	runs := []lpdf.Text{
		run("bottom", 10, 100, 30, 12),
		run("right", 200, 700, 30, 12),
		run("left", 10, 701, 30, 12), // same visual row as "right", slight jitter
		run("middle", 10, 400, 30, 12),
	}
	sortReadingOrder(runs)

	want := []string{"left", "right", "middle", "bottom"}
	for i, w := range want {
		if runs[i].S != w {
			t.Errorf("run %d = %q, want %q", i, runs[i].S, w)
		}
	}
}

func TestCoalesceRunsGluesCharacterLevelRuns(t *testing.T) {
	// One run per glyph, touching: must come out as a single word fragment.
	runs := []lpdf.Text{
		run("H", 10, 700, 7, 12),
		run("e", 17, 700, 6, 12),
		run("l", 23, 700, 3, 12),
		run("l", 26, 700, 3, 12),
		run("o", 29, 700, 6, 12),
	}
	fragments := coalesceRuns(runs)
	if len(fragments) != 1 {
		t.Fatalf("got %d fragments, want 1", len(fragments))
	}
	f := fragments[0]
	if f.Text != "Hello" {
		t.Errorf("text = %q, want Hello", f.Text)
	}
	if f.Width != 25 {
		t.Errorf("width = %v, want 25", f.Width)
	}
	if o := f.Origin(); o.X != 10 || o.Y != 700 {
		t.Errorf("origin = %+v, want (10, 700)", o)
	}
}

func TestCoalesceRunsSplitsAtWordGaps(t *testing.T) {
	// Word-sized gap (> 0.3 * font size) starts a new fragment.
	runs := []lpdf.Text{
		run("Hello", 10, 700, 30, 12),
		run("World", 46, 700, 30, 12),
	}
	fragments := coalesceRuns(runs)
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(fragments))
	}
	if fragments[0].Text != "Hello" || fragments[1].Text != "World" {
		t.Errorf("fragments = %q, %q", fragments[0].Text, fragments[1].Text)
	}
}

func TestCoalesceRunsSplitsAcrossRows(t *testing.T) {
	runs := []lpdf.Text{
		run("top", 10, 700, 20, 12),
		run("below", 10, 680, 20, 12),
	}
	fragments := coalesceRuns(runs)
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(fragments))
	}
}

func TestCoalesceRunsSkipsEmptyAndDefaultsFontSize(t *testing.T) {
	runs := []lpdf.Text{
		run("", 10, 700, 0, 12),
		run("X", 10, 700, 6, 0), // zero font size falls back
	}
	fragments := coalesceRuns(runs)
	if len(fragments) != 1 {
		t.Fatalf("got %d fragments, want 1", len(fragments))
	}
	if fragments[0].Height != fallbackFontSize {
		t.Errorf("height = %v, want fallback %v", fragments[0].Height, fallbackFontSize)
	}
}
