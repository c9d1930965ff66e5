// Package year extracts publication years from academic paper text.
//
// Extraction runs a fixed list of independent strategies over the full
// text. Each strategy proposes zero or more (year, confidence) candidates
// restricted to the plausible range [1990, 2030]; the best candidate wins
// by confidence, then by recency.
package year

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// MinYear and MaxYear bound the plausible publication range.
	MinYear = 1990
	MaxYear = 2030
)

// candidate pairs a detected year with the confidence of the strategy
// that produced it.
type candidate struct {
	year       int
	confidence int
}

// strategies is the ordered list of detection strategies. Order does not
// affect selection (confidence does); it mirrors priority for readers.
var strategies = []func(string) []candidate{
	venueYear,
	ordinalEdition,
	copyrightNotice,
	publicationDates,
	chineseYears,
	journalVolume,
	arxivID,
	doiYear,
	monthDates,
	frequency,
}

// Extract returns the most plausible publication year found in text,
// or 0 if none is found. It is a pure function and never panics.
func Extract(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	var candidates []candidate
	for _, strategy := range strategies {
		candidates = append(candidates, strategy(text)...)
	}
	if len(candidates) == 0 {
		return 0
	}

	// Highest confidence first; among equals prefer the more recent
	// year (publication dates beat older citation-year noise).
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].confidence != candidates[j].confidence {
			return candidates[i].confidence > candidates[j].confidence
		}
		return candidates[i].year > candidates[j].year
	})
	return candidates[0].year
}

// ChineseYearToInt converts a Chinese numeral year like "二〇二三" or
// "二零二三" to its integer value. The second return is false unless
// exactly four digit characters resolve.
func ChineseYearToInt(s string) (int, bool) {
	var digits []int
	for _, r := range s {
		if v, ok := chineseDigits[r]; ok && v <= 9 {
			digits = append(digits, v)
		}
	}
	if len(digits) != 4 {
		return 0, false
	}
	return digits[0]*1000 + digits[1]*100 + digits[2]*10 + digits[3], true
}

// EditionToYear converts a conference edition number to a year.
// AAAI numbers editions from 1986 (AAAI-37 was 2023); other venues are
// assumed to encode the last two digits of the year.
func EditionToYear(edition int, venue string) int {
	if strings.EqualFold(venue, "AAAI") {
		return 1986 + edition
	}
	if edition < 50 {
		return 2000 + edition
	}
	return 1900 + edition
}

func plausible(y int) bool {
	return y >= MinYear && y <= MaxYear
}

// venuePattern holds the compiled year-detection patterns for one venue.
type venuePattern struct {
	name     string
	short    *regexp.Regexp // CVPR'23, AAAI-23
	full     *regexp.Regexp // CVPR 2023
	reversed *regexp.Regexp // 2023 CVPR
}

var venuePatterns []venuePattern

var ordinalVenueRe *regexp.Regexp

func init() {
	for _, name := range venueNames {
		q := regexp.QuoteMeta(name)
		venuePatterns = append(venuePatterns, venuePattern{
			name:     name,
			short:    regexp.MustCompile(`(?i)\b` + q + `[-\s'’]?(\d{2})\b`),
			full:     regexp.MustCompile(`(?i)\b` + q + `[-\s]?(20\d{2})\b`),
			reversed: regexp.MustCompile(`(?i)(20\d{2})\s*` + q + `\b`),
		})
	}

	// Longest ordinals first so "thirty-seventh" is not consumed as
	// "seventh" by the alternation.
	ordinals := make([]string, 0, len(ordinalMap))
	for w := range ordinalMap {
		ordinals = append(ordinals, w)
	}
	sort.Slice(ordinals, func(i, j int) bool { return len(ordinals[i]) > len(ordinals[j]) })
	venues := make([]string, len(venueNames))
	for i, v := range venueNames {
		venues[i] = regexp.QuoteMeta(v)
	}
	ordinalVenueRe = regexp.MustCompile(`(?i)\b(` + strings.Join(ordinals, "|") +
		`)\s+(` + strings.Join(venues, "|") + `)\b`)
}

// venueYear matches venue abbreviations adjacent to a two- or four-digit
// year, e.g. "CVPR'23", "AAAI 2023", "2023 NeurIPS". Confidence 100.
func venueYear(text string) []candidate {
	var out []candidate
	add := func(m []string) {
		if m == nil {
			return
		}
		y, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		if len(m[1]) == 2 {
			y += 2000
		}
		if plausible(y) {
			out = append(out, candidate{y, 100})
		}
	}
	for _, vp := range venuePatterns {
		add(vp.short.FindStringSubmatch(text))
		add(vp.full.FindStringSubmatch(text))
		add(vp.reversed.FindStringSubmatch(text))
	}
	return out
}

// ordinalEdition matches ordinal conference editions like
// "Thirty-Seventh AAAI" and converts the edition to a year. Confidence 90.
func ordinalEdition(text string) []candidate {
	var out []candidate
	for _, m := range ordinalVenueRe.FindAllStringSubmatch(text, -1) {
		edition, ok := ordinalMap[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		y := EditionToYear(edition, m[2])
		if plausible(y) {
			out = append(out, candidate{y, 90})
		}
	}
	return out
}

var copyrightRes = []*regexp.Regexp{
	regexp.MustCompile(`[Cc]opyright\s*[©®]?\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`©\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`\(c\)\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`[Cc]opyright\s+(?:by\s+)?(?:\w+\s+)*((?:19|20)\d{2})`),
	// Chinese copyright notices
	regexp.MustCompile(`版权所有[©®]?\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`版权[©®]?\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`((?:19|20)\d{2})\s*版权`),
}

func copyrightNotice(text string) []candidate {
	return firstMatches(text, copyrightRes, 85)
}

var publicationRes = []*regexp.Regexp{
	regexp.MustCompile(`[Pp]ublished:?\s*\w*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`[Aa]ccepted:?\s*\w*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`[Rr]eceived:?\s*\w*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`[Oo]nline:?\s*\w*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`[Pp]ublication\s+[Dd]ate:?\s*\w*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`[Aa]vailable\s+[Oo]nline:?\s*\w*\s*((?:19|20)\d{2})`),
	// Chinese publication lifecycle labels
	regexp.MustCompile(`发表[于日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`出版[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`接收[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`录用[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`收稿[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`修回[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`刊出[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`网络出版[日期:：]*\s*((?:19|20)\d{2})`),
	regexp.MustCompile(`发布[日期:：]*\s*((?:19|20)\d{2})`),
}

func publicationDates(text string) []candidate {
	return firstMatches(text, publicationRes, 80)
}

var (
	chineseArabicYearRe  = regexp.MustCompile(`((?:19|20)\d{2})\s*年`)
	chineseNumeralYearRe = regexp.MustCompile(`([一二三四五六七八九零〇]{4})\s*年`)
)

// chineseYears matches Arabic "2023年" and numeral "二〇二三年" year
// literals. Confidence 78.
func chineseYears(text string) []candidate {
	var out []candidate
	for _, m := range chineseArabicYearRe.FindAllStringSubmatch(text, -1) {
		if y, _ := strconv.Atoi(m[1]); plausible(y) {
			out = append(out, candidate{y, 78})
		}
	}
	for _, m := range chineseNumeralYearRe.FindAllStringSubmatch(text, -1) {
		if y, ok := ChineseYearToInt(m[1]); ok && plausible(y) {
			out = append(out, candidate{y, 78})
		}
	}
	return out
}

var journalRes = []*regexp.Regexp{
	regexp.MustCompile(`[Vv]ol(?:ume)?\.?\s*\d+[^\n]*?((?:19|20)\d{2})`),
	regexp.MustCompile(`\(\s*((?:19|20)\d{2})\s*\)`),
	regexp.MustCompile(`,\s*((?:19|20)\d{2})\s*$`),
	regexp.MustCompile(`第\s*\d+\s*卷[^\n]*?((?:19|20)\d{2})`),
	regexp.MustCompile(`第\s*\d+\s*期[^\n]*?((?:19|20)\d{2})`),
}

// journalVolume matches volume/issue markers co-occurring with a year.
// Confidence 70.
func journalVolume(text string) []candidate {
	var out []candidate
	for _, re := range journalRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if y, _ := strconv.Atoi(m[1]); plausible(y) {
				out = append(out, candidate{y, 70})
			}
		}
	}
	return out
}

var arxivRe = regexp.MustCompile(`(?i)arXiv[:\s]+(\d{2})(\d{2})\.\d+`)

// arxivID derives the year from an arXiv identifier (arXiv:2301.12345).
// Confidence 75.
func arxivID(text string) []candidate {
	m := arxivRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	yy, _ := strconv.Atoi(m[1])
	y := 2000 + yy
	if y < 2000 || y > MaxYear {
		return nil
	}
	return []candidate{{y, 75}}
}

var doiYearRe = regexp.MustCompile(`10\.\d+/\w+\.((?:19|20)\d{2})\.`)

// doiYear derives the year from a DOI that embeds one. Confidence 75.
func doiYear(text string) []candidate {
	m := doiYearRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if y, _ := strconv.Atoi(m[1]); plausible(y) {
		return []candidate{{y, 75}}
	}
	return nil
}

const monthsEn = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

var monthDateEnRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)` + monthsEn + `\.?\s+((?:19|20)\d{2})`),
	regexp.MustCompile(`(?i)((?:19|20)\d{2})\s*` + monthsEn),
	regexp.MustCompile(`(?i)\d{1,2}\s+` + monthsEn + `\s+((?:19|20)\d{2})`),
	regexp.MustCompile(`(?i)` + monthsEn + `\s+\d{1,2},?\s+((?:19|20)\d{2})`),
}

var monthDateZhRes = []*regexp.Regexp{
	regexp.MustCompile(`((?:19|20)\d{2})\s*年\s*\d{1,2}\s*月`),
	regexp.MustCompile(`((?:19|20)\d{2})[年\-/]\d{1,2}[月\-/]`),
}

// monthDates matches month-adjacent dates. Confidence 60 for English
// month names, 65 for the Chinese 年/月 forms.
func monthDates(text string) []candidate {
	var out []candidate
	for _, re := range monthDateEnRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if y, _ := strconv.Atoi(m[1]); plausible(y) {
				out = append(out, candidate{y, 60})
			}
		}
	}
	for _, re := range monthDateZhRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if y, _ := strconv.Atoi(m[1]); plausible(y) {
				out = append(out, candidate{y, 65})
			}
		}
	}
	return out
}

var bareYearRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)

// frequency tallies every bare four-digit year token; confidence grows
// with occurrence count but is capped below all targeted strategies.
func frequency(text string) []candidate {
	counts := make(map[int]int)
	for _, m := range bareYearRe.FindAllStringSubmatch(text, -1) {
		if y, _ := strconv.Atoi(m[1]); plausible(y) {
			counts[y]++
		}
	}
	var out []candidate
	for y, n := range counts {
		conf := 20 + n*5
		if conf > 50 {
			conf = 50
		}
		out = append(out, candidate{y, conf})
	}
	return out
}

// firstMatches appends one candidate per pattern from its first match.
func firstMatches(text string, res []*regexp.Regexp, confidence int) []candidate {
	var out []candidate
	for _, re := range res {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if y, _ := strconv.Atoi(m[1]); plausible(y) {
			out = append(out, candidate{y, confidence})
		}
	}
	return out
}
