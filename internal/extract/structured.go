package extract

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/wlin-papers/papercite/internal/authors"
)

const (
	// mastheadMaxVPos bounds the zone where journal masthead blocks are
	// expected, measured from the top of the page.
	mastheadMaxVPos = 200
	// mastheadMargin extends the cutoff below the lowest masthead block.
	mastheadMargin = 30
	// titleMergeFontTol merges blocks into a multi-line title when their
	// font sizes differ by less than this.
	titleMergeFontTol = 1
	// titleMergeDist merges blocks within this vertical distance of the
	// title or an already-merged title block.
	titleMergeDist = 30
	// authorSearchDist bounds how far below the title the author line
	// may sit.
	authorSearchDist = 150
	// minBlockLen drops blocks too short to carry a title or author.
	minBlockLen = 5
)

// Structured extracts metadata from font-annotated first-page blocks.
// Missing pieces come back zero-valued and signal the caller to fall
// back to plain-text extraction.
func (e *Engine) Structured(path string) (Result, error) {
	blocks, err := e.Source.TextBlocks(path)
	if err != nil {
		return Result{}, err
	}
	if len(blocks) == 0 {
		return Result{}, nil
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	res := Result{Year: e.resolveYear(path, strings.Join(texts, " "))}

	content := filterBlocks(blocks)
	if len(content) == 0 {
		return res, nil
	}

	titleBlocks := mergeTitleBlocks(content)
	parts := make([]string, len(titleBlocks))
	for i, b := range titleBlocks {
		parts[i] = b.Text
	}
	res.Title = strings.Join(parts, " ")

	titleBottom := titleBlocks[len(titleBlocks)-1].VPos
	if line := authorLineBelow(content, titleBottom); line != "" {
		res.Authors = authors.Parse(line)
	}
	return res, nil
}

// filterBlocks removes masthead-zone blocks, header/footer boilerplate,
// too-short blocks and bare email tokens.
func filterBlocks(blocks []TextBlock) []TextBlock {
	// Structural journal elements near the top of the page define a
	// masthead zone; everything at or above its lower edge is noise.
	cutoff := 0.0
	for _, b := range blocks {
		if b.VPos < mastheadMaxVPos && matchesAny(journalZonePatterns, b.Text) {
			cutoff = math.Max(cutoff, b.VPos)
		}
	}
	if cutoff > 0 {
		cutoff += mastheadMargin
	}

	var content []TextBlock
	for _, b := range blocks {
		if matchesAny(headerPatterns, b.Text) {
			continue
		}
		if cutoff > 0 && b.VPos <= cutoff {
			continue
		}
		if utf8.RuneCountInString(b.Text) < minBlockLen {
			continue
		}
		if emailTokenRe.MatchString(b.Text) && !strings.Contains(b.Text, " ") {
			continue
		}
		content = append(content, b)
	}
	return content
}

// mergeTitleBlocks picks the largest-font block and greedily absorbs
// blocks with near-identical font size that sit close to the title or
// to an already-merged block, recovering multi-line titles. The merged
// set comes back in top-to-bottom order.
func mergeTitleBlocks(content []TextBlock) []TextBlock {
	byFont := make([]TextBlock, len(content))
	copy(byFont, content)
	sort.SliceStable(byFont, func(i, j int) bool {
		return byFont[i].FontSize > byFont[j].FontSize
	})

	title := byFont[0]
	merged := []TextBlock{title}
	for _, b := range byFont[1:] {
		if math.Abs(b.FontSize-title.FontSize) >= titleMergeFontTol {
			continue
		}
		near := math.Abs(b.VPos-title.VPos) < titleMergeDist
		for _, m := range merged {
			if near {
				break
			}
			near = math.Abs(b.VPos-m.VPos) < titleMergeDist
		}
		if near {
			merged = append(merged, b)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].VPos < merged[j].VPos
	})
	return merged
}

// authorLineBelow scans blocks strictly below the title, top to bottom,
// and returns the first block that looks like an author line.
func authorLineBelow(content []TextBlock, titleBottom float64) string {
	var below []TextBlock
	for _, b := range content {
		if b.VPos > titleBottom {
			below = append(below, b)
		}
	}
	sort.SliceStable(below, func(i, j int) bool {
		return below[i].VPos < below[j].VPos
	})

	for _, b := range below {
		if b.VPos-titleBottom > authorSearchDist {
			break
		}
		lower := strings.ToLower(b.Text)
		if containsAny(lower, affiliationKeywords) {
			continue
		}
		if strings.ContainsAny(b.Text, ",，*") {
			return b.Text
		}
		if namePairRe.MatchString(b.Text) {
			return b.Text
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
