// Package pdftext extracts plain text and font-annotated text blocks
// from PDF files, with an optional OCR fallback for scanned documents.
package pdftext

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/wlin-papers/papercite/internal/extract"
)

// MinNativeTextLen is the minimum number of characters native extraction
// must yield before OCR is skipped. Scanned PDFs typically produce
// nothing or a handful of stray glyphs.
const MinNativeTextLen = 50

// OCRFunc runs OCR over the first maxPages of a PDF and returns the
// recognized text, or "" on total failure.
type OCRFunc func(path string, maxPages int) string

// Extractor reads PDF text via the pdf library. When OCR is non-nil and
// native extraction yields too little text, OCR output is used instead
// if it is longer.
type Extractor struct {
	OCR OCRFunc
}

// New returns an Extractor without OCR fallback.
func New() *Extractor {
	return &Extractor{}
}

// FirstPageText returns the text of the first page.
func (e *Extractor) FirstPageText(path string) (string, error) {
	return e.pageText(path, 1)
}

// MultiPageText returns the concatenated text of the first maxPages
// pages.
func (e *Extractor) MultiPageText(path string, maxPages int) (string, error) {
	return e.pageText(path, maxPages)
}

func (e *Extractor) pageText(path string, maxPages int) (text string, err error) {
	defer recoverReaderPanic(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		plain, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(plain)
		b.WriteString("\n")
	}

	text = norm.NFC.String(b.String())
	if e.OCR != nil && len(strings.TrimSpace(text)) < MinNativeTextLen {
		if ocrText := e.OCR(path, maxPages); len(strings.TrimSpace(ocrText)) > len(strings.TrimSpace(text)) {
			return norm.NFC.String(ocrText), nil
		}
	}
	return text, nil
}

// lineYTol groups text fragments into one line when their baselines
// differ by less than this many points.
const lineYTol = 2.0

// wordGapTol inserts a space between fragments separated horizontally
// by more than this many points.
const wordGapTol = 1.0

// TextBlocks returns one block per visually distinct line of the first
// page, annotated with the line's dominant font size and its vertical
// position measured from the top of the page.
func (e *Extractor) TextBlocks(path string) (blocks []extract.TextBlock, err error) {
	defer recoverReaderPanic(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return nil, nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return nil, nil
	}

	texts := page.Content().Text
	if len(texts) == 0 {
		return nil, nil
	}
	top := pageTop(page, texts)

	// Fragments arrive in content order; group consecutive runs that
	// share a baseline into lines.
	type line struct {
		y        float64
		fontSize float64
		prevEnd  float64
		b        strings.Builder
	}
	var lines []*line
	var cur *line
	for _, t := range texts {
		if cur != nil && math.Abs(t.Y-cur.y) < lineYTol {
			if t.X-cur.prevEnd > wordGapTol && cur.b.Len() > 0 {
				cur.b.WriteString(" ")
			}
			cur.b.WriteString(t.S)
			cur.prevEnd = t.X + t.W
			if t.FontSize > cur.fontSize {
				cur.fontSize = t.FontSize
			}
			continue
		}
		cur = &line{y: t.Y, fontSize: t.FontSize, prevEnd: t.X + t.W}
		cur.b.WriteString(t.S)
		lines = append(lines, cur)
	}

	for _, ln := range lines {
		text := strings.TrimSpace(norm.NFC.String(ln.b.String()))
		if text == "" {
			continue
		}
		blocks = append(blocks, extract.TextBlock{
			Text:     text,
			FontSize: ln.fontSize,
			VPos:     top - ln.y,
		})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].VPos < blocks[j].VPos
	})
	return blocks, nil
}

// pageTop resolves the top-of-page Y coordinate in PDF space (which
// counts upward from the bottom). Falls back to the highest fragment
// when the page carries no usable MediaBox.
func pageTop(page pdf.Page, texts []pdf.Text) float64 {
	box := page.V.Key("MediaBox")
	if box.Kind() == pdf.Array && box.Len() == 4 {
		if top := box.Index(3).Float64(); top > 0 {
			return top
		}
	}
	top := 0.0
	for _, t := range texts {
		if t.Y > top {
			top = t.Y
		}
	}
	return top
}

// recoverReaderPanic converts pdf reader panics on malformed files into
// errors so one bad PDF cannot abort a batch.
func recoverReaderPanic(err *error) {
	if v := recover(); v != nil {
		if e, ok := v.(error); ok {
			*err = fmt.Errorf("reading pdf: %w", e)
			return
		}
		*err = fmt.Errorf("reading pdf: %v", v)
	}
}
