// Package locus loads a document, finds text in it via typo-tolerant search,
// and highlights the matching region on a rendered page.
//
// Basic usage:
//
//	session := locus.NewSession(locus.DefaultOptions(), nil)
//	defer session.Close()
//
//	if err := session.Load(ctx, "report.pdf"); err != nil {
//	    // handle error
//	}
//	results, err := session.Search("Quarterly Revenue", 0.4)
//	if err != nil {
//	    // handle error
//	}
//	surface, err := session.Show(ctx, results.Matches[0])
//
// A session owns exactly one document at a time. Loading a new document
// fully resets the session (corpus, rendered pages, highlights) before the
// new decode starts, so no stale state outlives a superseded load.
package locus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/locusdoc/locus/decode"
	"github.com/locusdoc/locus/decode/hocrdoc"
	"github.com/locusdoc/locus/decode/ocrdoc"
	"github.com/locusdoc/locus/decode/pdfdoc"
	"github.com/locusdoc/locus/extract"
	"github.com/locusdoc/locus/highlight"
	"github.com/locusdoc/locus/model"
	"github.com/locusdoc/locus/render"
	"github.com/locusdoc/locus/search"
)

// Session holds one loaded document and everything derived from it: the
// searchable corpus, the rendered-page surfaces, and highlight state. All
// state is rebuilt from the source document on each load; nothing persists.
type Session struct {
	opts Options
	log  *slog.Logger

	builder   *extract.Builder
	ranker    *search.Ranker
	presenter *highlight.Presenter
	queue     *render.Queue

	mu       sync.Mutex
	doc      decode.Document
	corpus   model.Corpus
	surfaces map[int]*render.Surface
}

// NewSession creates an empty session. A nil logger means slog.Default().
func NewSession(opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	ranker := search.NewRanker()
	if opts.ResultLimit > 0 {
		ranker.Limit = opts.ResultLimit
	}

	return &Session{
		opts:      opts,
		log:       logger,
		builder:   extract.NewBuilder(opts.MergeTolerance, logger),
		ranker:    ranker,
		presenter: highlight.NewPresenter(opts.HighlightTTL, logger),
		queue:     render.NewQueue(),
		surfaces:  make(map[int]*render.Surface),
	}
}

// Load replaces the session's document with the file at path.
//
// The file's media type is checked first; unsupported input is rejected with
// an InvalidInputError and the existing session state is left untouched.
// Once the input is accepted, all prior state is cleared before the decode
// starts, and a decode or extraction failure leaves the session clean and
// empty rather than half-loaded.
func (s *Session) Load(ctx context.Context, path string) error {
	format, err := decode.DetectFormatFile(path)
	if err != nil {
		return &decode.InvalidInputError{Path: path, Reason: err.Error()}
	}
	if format == decode.FormatUnknown {
		return &decode.InvalidInputError{Path: path, Reason: "unsupported media type"}
	}

	// Input accepted: the old session is gone from here on.
	s.Reset()

	doc, err := openDocument(format, path)
	if err != nil {
		return err
	}

	corpus, err := s.builder.Build(ctx, doc)
	if err != nil {
		doc.Close()
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.corpus = corpus
	s.mu.Unlock()

	s.log.Info("document loaded", "path", path, "format", format.String(), "pages", doc.NumPages(), "lines", len(corpus))
	return nil
}

// LoadDocument replaces the session's document with an already-decoded one,
// skipping the media-type check. Useful when the caller controls decoding.
// The session takes ownership of doc and closes it on reset.
func (s *Session) LoadDocument(ctx context.Context, doc decode.Document) error {
	s.Reset()

	corpus, err := s.builder.Build(ctx, doc)
	if err != nil {
		doc.Close()
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.corpus = corpus
	s.mu.Unlock()
	return nil
}

// openDocument dispatches to the decoder for the sniffed format.
func openDocument(format decode.Format, path string) (decode.Document, error) {
	switch format {
	case decode.FormatPDF:
		return pdfdoc.Open(path)
	case decode.FormatHOCR:
		return hocrdoc.Open(path)
	case decode.FormatImage:
		return ocrdoc.Open(path)
	default:
		return nil, &decode.InvalidInputError{Path: path, Reason: "unsupported media type"}
	}
}

// Reset clears the corpus, the rendered-page set, and all highlight state,
// returning the session to empty. The document handle is closed.
func (s *Session) Reset() {
	s.mu.Lock()
	doc := s.doc
	s.doc = nil
	s.corpus = nil
	for _, surf := range s.surfaces {
		surf.ClearHighlight()
	}
	s.surfaces = make(map[int]*render.Surface)
	s.mu.Unlock()

	if doc != nil {
		doc.Close()
	}
}

// Close releases the session's resources.
func (s *Session) Close() error {
	s.Reset()
	return nil
}

// Corpus returns the loaded corpus. Callers must not mutate it.
func (s *Session) Corpus() model.Corpus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corpus
}

// PageCount returns the loaded document's page count, or 0 when empty.
func (s *Session) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0
	}
	return s.doc.NumPages()
}

// Search ranks the corpus against query using the given threshold; a
// negative threshold means the session default. The returned matches are
// capped at the session's result limit while Results.Total reports the
// pre-cap count.
func (s *Session) Search(query string, threshold float64) (search.Results, error) {
	s.mu.Lock()
	corpus := s.corpus
	s.mu.Unlock()

	if corpus == nil {
		return search.Results{}, fmt.Errorf("no document loaded")
	}
	if threshold < 0 {
		threshold = s.opts.Threshold
	}
	return s.ranker.Search(corpus, query, threshold)
}

// Show navigates to a match: it materializes the match's page (once per
// session; repeat calls reuse the surface) and places the highlight. Render
// failures are page-local and reported as a RenderError; highlight geometry
// failures degrade to no highlight and do not fail the call.
func (s *Session) Show(ctx context.Context, m model.Match) (*render.Surface, error) {
	surf, err := s.materialize(ctx, m.Line.PageNumber)
	if err != nil {
		return nil, err
	}

	s.presenter.Present(surf, surf.Viewport(), m.Line)
	return surf, nil
}

// materialize renders pageNumber to a surface through the FIFO queue. The
// queue serializes materialization so at most one render is in flight, and
// the in-queue presence check makes repeat requests no-ops.
func (s *Session) materialize(ctx context.Context, pageNumber int) (*render.Surface, error) {
	s.mu.Lock()
	surf, ok := s.surfaces[pageNumber]
	doc := s.doc
	s.mu.Unlock()

	if ok {
		return surf, nil
	}
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	err := s.queue.Do(ctx, func() error {
		s.mu.Lock()
		_, done := s.surfaces[pageNumber]
		s.mu.Unlock()
		if done {
			return nil
		}

		page, err := doc.Page(pageNumber)
		if err != nil {
			return &render.RenderError{PageNumber: pageNumber, Err: err}
		}

		target := render.NewSurface(pageNumber, page.Viewport(s.opts.Scale))
		if err := page.Render(ctx, target); err != nil {
			return &render.RenderError{PageNumber: pageNumber, Err: err}
		}

		s.mu.Lock()
		s.surfaces[pageNumber] = target
		s.mu.Unlock()
		s.log.Debug("page materialized", "page", pageNumber)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	surf = s.surfaces[pageNumber]
	s.mu.Unlock()
	return surf, nil
}

// RenderedPages returns the page numbers materialized so far, for inspection.
func (s *Session) RenderedPages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages := make([]int, 0, len(s.surfaces))
	for n := range s.surfaces {
		pages = append(pages, n)
	}
	return pages
}
