package extract

import "regexp"

// headerPatterns match masthead and boilerplate blocks that can never be
// a title or author line.
var headerPatterns = compile(
	`AAAI`,
	`Conference`,
	`Association for`,
	`Artificial Intelligence`,
	`Copyright`,
	`www\.`,
	`https?://`,
	`ScienceDirect`,
	`Elsevier`,
	`Springer`,
	`journal\s+homepage`,
	`Contents\s+lists?\s+available`,
	`Check\s+for`,
	`^\s*updates?\s*$`,
	`ARTICLE\s+INFO`,
	`Keywords?:`,
)

// extendedHeaderPatterns extend headerPatterns for plain-text fallback,
// where journal front matter arrives as undistinguished lines.
var extendedHeaderPatterns = append(append([]*regexp.Regexp{}, headerPatterns...), compile(
	`^\d+[-–]\d+$`,            // page ranges
	`^[A-Z]{3,}\s*$`,          // short all-caps tokens
	`\(\d{4}\)\s*\d+[-–—]\d+`, // citation style: (2019) 1437-1447
	`^第\s*\d+\s*卷`,            // Chinese volume marker
	`^Vol\.\s*\d+`,
	`^DOI\s*:`,
	`文章编号`,                 // Chinese article number
	`中图分类号`,                // Chinese CLC code
	`文献标志码`,                // Chinese document code
	`开放科学`,                 // open science identifier
	`^\d{4}\s*年\s*\d+\s*月`,   // Chinese date line
	`^[A-Z][a-z]+\.\s*\d{4}\s*$`, // abbreviated month + year
	`^No\.\s*\d+`,
)...)

// journalZonePatterns identify structural journal elements that define
// the masthead zone at the top of a first page.
var journalZonePatterns = compile(
	`ScienceDirect`,
	`Elsevier`,
	`Springer`,
	`journal\s+homepage`,
	`Contents\s+lists?\s+available`,
	`HOSTED\s+BY`,
	`www\.`,
	`https?://`,
)

// affiliationKeywords mark blocks that belong to affiliations or body
// sections rather than the author line.
var affiliationKeywords = []string{
	"abstract", "introduction", "keyword", "department",
	"university", "college", "school", "institute", "{", "@",
}

// addressKeywords penalize title candidates that look like addresses.
var addressKeywords = []string{
	"department", "university", "college", "school", "institute",
	"street", "avenue", "road", "laboratory", "lab ", "faculty",
}

var (
	namePairRe     = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+`)
	initialsLineRe = regexp.MustCompile(`\b[A-Z]\.\w?\.\s*[A-Z]`)
	parenYearRe    = regexp.MustCompile(`\(\d{4}\)`)
	venueShapedRe  = regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+){0,3}$`)
	cjkNameLeadRe  = regexp.MustCompile(`^[\x{4e00}-\x{9fff}]{2,4}[0-9,，]`)
	emailTokenRe   = regexp.MustCompile(`@`)
)

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
