// Package filename renders citation-style filenames from extracted
// paper metadata.
package filename

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wlin-papers/papercite/internal/meta"
)

// invalidChars are characters not allowed in filenames on common
// filesystems.
const invalidChars = `<>:"/\|?*`

// MaxTitleLength caps the sanitized title portion of a filename.
const MaxTitleLength = 200

var whitespaceRe = regexp.MustCompile(`\s+`)

// Sanitize removes filesystem-illegal characters, collapses whitespace
// and truncates to MaxTitleLength.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if !strings.ContainsRune(invalidChars, r) {
			b.WriteRune(r)
		}
	}
	s := whitespaceRe.ReplaceAllString(b.String(), " ")
	runes := []rune(s)
	if len(runes) > MaxTitleLength {
		s = string(runes[:MaxTitleLength])
	}
	return strings.TrimSpace(s)
}

// FormatAuthors renders the author list per the given format. Chinese
// names substitute the full name wherever a surname would appear, since
// single-character surnames are not distinctive. Returns "" for an
// empty list.
func FormatAuthors(list []meta.Author, format meta.AuthorFormat, n int) string {
	if len(list) == 0 {
		return ""
	}
	first := list[0]

	switch format {
	case meta.FirstSurname:
		if first.IsChinese() {
			return first.FullName
		}
		return first.Surname

	case meta.FirstFull:
		return first.FullName

	case meta.AllSurnames:
		names := displaySurnames(list)
		if len(names) > 5 {
			return strings.Join(names[:5], ", ") + " et al."
		}
		return strings.Join(names, ", ")

	case meta.AllFull:
		names := fullNames(list)
		if len(names) > 3 {
			return strings.Join(names[:3], ", ") + " et al."
		}
		return strings.Join(names, ", ")

	case meta.NSurnames:
		names := displaySurnames(truncate(list, n))
		if len(list) > n {
			return strings.Join(names, ", ") + " et al."
		}
		return strings.Join(names, ", ")

	case meta.NFull:
		names := fullNames(truncate(list, n))
		if len(list) > n {
			return strings.Join(names, ", ") + " et al."
		}
		return strings.Join(names, ", ")
	}

	return first.Surname
}

// Generate builds the citation filename "Author (Year) - Title.pdf".
// The single-author formats gain a top-level " et al." when more authors
// exist; the list formats handle their own truncation suffix, so the two
// mechanisms never stack.
func Generate(title string, list []meta.Author, yr int, format meta.AuthorFormat, n int) string {
	titleClean := Sanitize(title)

	authorStr := FormatAuthors(list, format, n)
	if authorStr == "" {
		authorStr = "Unknown"
	}
	authorClean := Sanitize(authorStr)

	if (format == meta.FirstSurname || format == meta.FirstFull) && len(list) > 1 {
		return fmt.Sprintf("%s et al. (%d) - %s.pdf", authorClean, yr, titleClean)
	}
	return fmt.Sprintf("%s (%d) - %s.pdf", authorClean, yr, titleClean)
}

func truncate(list []meta.Author, n int) []meta.Author {
	if n < len(list) {
		return list[:n]
	}
	return list
}

func displaySurnames(list []meta.Author) []string {
	names := make([]string, len(list))
	for i, a := range list {
		if a.IsChinese() {
			names[i] = a.FullName
		} else {
			names[i] = a.Surname
		}
	}
	return names
}

func fullNames(list []meta.Author) []string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.FullName
	}
	return names
}
