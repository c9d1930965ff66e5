// Package authors parses raw author lines from paper front matter into
// structured authors, for both Latin-script and Chinese names.
package authors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/wlin-papers/papercite/internal/meta"
)

// markerGlyphs are footnote and affiliation markers commonly attached to
// author names, removed before any parsing.
var markerGlyphs = []string{
	"*", "∗", "⁎", "✱", "＊",
	"†", "‡", "§", "¶", "∥",
	"¹", "²", "³", "⁴", "⁵", "⁶", "⁷", "⁸", "⁹", "⁰",
	"₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", "₉", "₀",
	"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨",
	"♠", "♣", "♦", "♥", "★", "☆",
}

var (
	digitRunRe   = regexp.MustCompile(`\d+`)
	nonNameRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s,.\-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	cjkRunRe   = regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,4}`)
	latinRunRe = regexp.MustCompile(`[A-Za-z]{2,}`)
	splitRe    = regexp.MustCompile(`\s*,\s*|\s+and\s+`)

	initialsRe = regexp.MustCompile(`^[A-Z]{1,4}$`)
	nameWordRe = regexp.MustCompile(`^[A-Z\x{00C0}-\x{024F}][A-Za-z\x{00C0}-\x{024F}\-']+$`)
)

// invalidSurnames are lowercased tokens that can never be surnames.
var invalidSurnames = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
	"from": true, "abstract": true, "introduction": true,
}

// Clean strips footnote markers, digit runs and any character outside
// letters, whitespace, commas, periods and hyphens, then collapses
// whitespace.
func Clean(text string) string {
	for _, g := range markerGlyphs {
		text = strings.ReplaceAll(text, g, " ")
	}
	text = digitRunRe.ReplaceAllString(text, " ")
	text = nonNameRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Parse segments a raw author line into individual authors. Pure-Chinese
// lines split on CJK runs of 2-4 characters (surname = first character);
// otherwise segments split on commas and "and" with per-word heuristics
// (surname = last accepted word).
func Parse(raw string) []meta.Author {
	cleaned := Clean(raw)
	if cleaned == "" {
		return nil
	}

	cjkNames := cjkRunRe.FindAllString(cleaned, -1)
	if len(cjkNames) > 0 && !latinRunRe.MatchString(cleaned) {
		out := make([]meta.Author, 0, len(cjkNames))
		for _, name := range cjkNames {
			out = append(out, meta.Author{
				FullName: name,
				Surname:  string([]rune(name)[0]),
			})
		}
		return out
	}

	var out []meta.Author
	for _, part := range splitRe.Split(cleaned, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		words := nameWords(part)
		if len(words) == 0 {
			continue
		}
		out = append(out, meta.Author{
			FullName: strings.Join(words, " "),
			Surname:  words[len(words)-1],
		})
	}
	return out
}

// nameWords extracts the plausible name words from one author segment.
func nameWords(segment string) []string {
	fields := strings.Fields(segment)
	var words []string

	for _, w := range fields {
		w = strings.TrimRight(w, ".")
		if w == "" {
			continue
		}
		if w == strings.ToLower(w) {
			continue // lowercase-only tokens are connectives, not names
		}
		// Abbreviated initials: "TC", "T.C" (from "T.C.", "A.J.S.")
		initials := strings.ReplaceAll(w, ".", "")
		if initialsRe.MatchString(initials) {
			words = append(words, initials)
			continue
		}
		if len([]rune(w)) < 2 {
			continue
		}
		if nameWordRe.MatchString(w) {
			words = append(words, w)
		}
	}

	if len(words) == 0 {
		// Fallback: any capitalized token that is mostly alphabetic.
		for _, w := range fields {
			w = strings.TrimRight(w, ".")
			runes := []rune(w)
			if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
				continue
			}
			if alphaRatio(w) >= 0.7 {
				words = append(words, w)
			}
		}
	}

	return words
}

// IsValid reports whether an author passes the surname validity contract.
func IsValid(a meta.Author) bool {
	name := a.Surname
	if name == "" {
		return false
	}
	runes := []rune(name)
	if len(runes) == 1 && runes[0] >= 0x4e00 && runes[0] <= 0x9fff {
		return true // single-character Chinese surname
	}
	if len(runes) < 2 {
		return false
	}
	if alphaRatio(name) < 0.7 {
		return false
	}
	if !unicode.IsLetter(runes[0]) {
		return false
	}
	return !invalidSurnames[strings.ToLower(name)]
}

// ValidList reports whether an author list is usable: non-empty with a
// valid first author.
func ValidList(authors []meta.Author) bool {
	return len(authors) > 0 && IsValid(authors[0])
}

func alphaRatio(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	alpha := 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	return float64(alpha) / float64(len(runes))
}
