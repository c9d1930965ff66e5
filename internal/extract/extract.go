// Package extract infers (title, authors, year) from academic paper
// front matter. The primary strategy works on font-annotated text blocks
// from the first page; when it cannot find a title or authors, a
// plain-text line-scoring fallback takes over.
package extract

import (
	"github.com/wlin-papers/papercite/internal/meta"
	"github.com/wlin-papers/papercite/internal/year"
)

// TextBlock is one visually distinct line on a page, annotated with its
// dominant font size and vertical position measured from the top of the
// page in points.
type TextBlock struct {
	Text     string
	FontSize float64
	VPos     float64
}

// Source provides page text for a PDF. Implementations may transparently
// fall back to OCR for scanned documents.
type Source interface {
	FirstPageText(path string) (string, error)
	MultiPageText(path string, maxPages int) (string, error)
	TextBlocks(path string) ([]TextBlock, error)
}

// Result holds the outcome of one extraction strategy. Title may be
// empty, Authors may be nil and Year may be 0; the processor decides
// whether to fall back.
type Result struct {
	Title   string
	Authors []meta.Author
	Year    int
}

// yearSearchPages is how many pages are scanned when the first page
// carries no usable year.
const yearSearchPages = 3

// Engine runs the extraction strategies against a Source.
type Engine struct {
	Source Source
}

// NewEngine returns an Engine reading from src.
func NewEngine(src Source) *Engine {
	return &Engine{Source: src}
}

// resolveYear extracts a year from firstPage text, retrying over
// multiple pages when the first page has none.
func (e *Engine) resolveYear(path, firstPage string) int {
	if y := year.Extract(firstPage); y != 0 {
		return y
	}
	multi, err := e.Source.MultiPageText(path, yearSearchPages)
	if err != nil || multi == "" {
		return 0
	}
	return year.Extract(multi)
}
