package hocrdoc

import (
	"context"
	"testing"
)

const sampleHOCR = `<!DOCTYPE html>
<html>
<head>
 <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
 <meta name="ocr-system" content="tesseract 5.3.0"/>
</head>
<body>
 <div class="ocr_page" id="page_1" title="image &quot;p1.png&quot;; bbox 0 0 1000 1400; ppageno 0">
  <div class="ocr_carea" title="bbox 80 90 600 130">
   <p class="ocr_par">
    <span class="ocr_line" title="bbox 80 90 600 130; baseline 0 -4">
     <span class="ocrx_word" title="bbox 80 90 200 120; x_wconf 96">Alpha</span>
     <span class="ocrx_word" title="bbox 210 91 320 121; x_wconf 95">Beta</span>
    </span>
    <span class="ocr_line" title="bbox 80 200 400 240">
     <span class="ocrx_word" title="bbox 80 200 250 230; x_wconf 91">Second</span>
    </span>
   </p>
  </div>
 </div>
 <div class="ocr_page" id="page_2" title="bbox 0 0 1000 1400; ppageno 1">
  <span class="ocrx_word" title="bbox 50 60 180 90; x_wconf 88">Gamma</span>
 </div>
</body>
</html>`

func TestParsePagesAndWords(t *testing.T) {
	doc, err := Parse([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.NumPages() != 2 {
		t.Fatalf("NumPages() = %d, want 2", doc.NumPages())
	}

	p1, err := doc.Page(1)
	if err != nil {
		t.Fatalf("Page(1): %v", err)
	}
	fragments, err := p1.TextContent(context.Background())
	if err != nil {
		t.Fatalf("TextContent: %v", err)
	}
	if len(fragments) != 3 {
		t.Fatalf("page 1 fragments = %d, want 3", len(fragments))
	}

	first := fragments[0]
	if first.Text != "Alpha" {
		t.Errorf("first word = %q, want Alpha", first.Text)
	}
	if o := first.Origin(); o.X != 80 || o.Y != 90 {
		t.Errorf("first word origin = %+v, want (80, 90)", o)
	}
	if first.Width != 120 || first.Height != 30 {
		t.Errorf("first word size = %vx%v, want 120x30", first.Width, first.Height)
	}

	// Document order is reading order.
	if fragments[1].Text != "Beta" || fragments[2].Text != "Second" {
		t.Errorf("word order = %q, %q", fragments[1].Text, fragments[2].Text)
	}
}

func TestParseViewportFromPageBBox(t *testing.T) {
	doc, err := Parse([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, _ := doc.Page(1)
	vp := p.Viewport(0.5)
	if vp.Width != 500 || vp.Height != 700 {
		t.Errorf("viewport = %vx%v, want 500x700", vp.Width, vp.Height)
	}
	// Top-down space: no axis flip.
	if vp.Transform[3] <= 0 {
		t.Error("viewport flips Y for a top-down document")
	}
}

func TestParseRejectsNonHOCR(t *testing.T) {
	if _, err := Parse([]byte("<html><body>plain</body></html>")); err == nil {
		t.Error("expected error for markup without ocr_page")
	}
}

func TestBBoxFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{name: "plain", title: "bbox 1 2 11 22", ok: true},
		{name: "with confidence", title: "bbox 1 2 11 22; x_wconf 96", ok: true},
		{name: "after other props", title: "image \"x.png\"; bbox 1 2 11 22", ok: true},
		{name: "missing", title: "x_wconf 96", ok: false},
		{name: "malformed numbers", title: "bbox a b c d", ok: false},
		{name: "empty", title: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, ok := bboxFromTitle(tt.title)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (box.X != 1 || box.Y != 2 || box.Width != 10 || box.Height != 20) {
				t.Errorf("box = %+v", box)
			}
		})
	}
}
