package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wlin-papers/papercite/internal/authors"
	"github.com/wlin-papers/papercite/internal/meta"
)

// titleScanLines is how many leading content lines are scored as title
// candidates. OCR text often carries many residual header lines.
const titleScanLines = 10

// authorScanLines is how many lines after the title are searched for an
// author line.
const authorScanLines = 5

var (
	supTagRe    = regexp.MustCompile(`<sup>[^<]*</sup>`)
	subTagRe    = regexp.MustCompile(`<sub>[^<]*</sub>`)
	brTagRe     = regexp.MustCompile(`<br\s*/?>`)
	anyTagRe    = regexp.MustCompile(`<[^>]+>`)
	multiSpaces = regexp.MustCompile(`  +`)

	thesisTitleRe  = regexp.MustCompile(`(?:论文题目|题\s*目)[：:\s]*(.+)`)
	thesisAuthorRe = regexp.MustCompile(`(?:作者姓名|作\s*者)[：:\s]*(.+)`)
	cjkRunRe       = regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,4}`)
)

// bodyKeywords stop the author scan: once body text starts there is no
// author line left to find.
var bodyKeywords = []string{"abstract", "introduction", "we ", "this paper"}

// Fallback extracts metadata from first-page plain text via heuristic
// line scoring. Used when structured extraction finds no title or
// authors.
func (e *Engine) Fallback(path string) (Result, error) {
	text, err := e.Source.FirstPageText(path)
	if err != nil {
		return Result{}, err
	}
	if text == "" {
		return Result{}, nil
	}

	text = StripOCRHTML(text)
	res := Result{Year: e.resolveYear(path, text)}

	// Chinese theses label their fields explicitly; an explicit title
	// label short-circuits the heuristics.
	if title, auths, ok := parseChineseThesis(text); ok {
		res.Title = title
		res.Authors = auths
		return res, nil
	}

	content := contentLines(text)
	if len(content) < 2 {
		return res, nil
	}

	title, titleIdx := bestTitleLine(content)
	title, titleIdx = extendTitle(content, title, titleIdx)
	res.Title = title
	res.Authors = authorsAfterTitle(content, titleIdx)
	return res, nil
}

// StripOCRHTML removes HTML artifacts produced by OCR engines: sup/sub
// spans vanish entirely (footnote markers), <br> becomes a space, other
// tags are unwrapped.
func StripOCRHTML(text string) string {
	text = supTagRe.ReplaceAllString(text, "")
	text = subTagRe.ReplaceAllString(text, "")
	text = brTagRe.ReplaceAllString(text, " ")
	text = anyTagRe.ReplaceAllString(text, "")
	return multiSpaces.ReplaceAllString(text, " ")
}

// parseChineseThesis parses explicitly labeled thesis front matter
// (论文题目 / 作者姓名). Returns ok=false when no title label exists.
func parseChineseThesis(text string) (string, []meta.Author, bool) {
	m := thesisTitleRe.FindStringSubmatch(text)
	if m == nil {
		return "", nil, false
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return "", nil, false
	}

	var auths []meta.Author
	if am := thesisAuthorRe.FindStringSubmatch(text); am != nil {
		value := strings.TrimSpace(am[1])
		for _, name := range cjkRunRe.FindAllString(value, -1) {
			auths = append(auths, meta.Author{
				FullName: name,
				Surname:  string([]rune(name)[0]),
			})
		}
	}
	return title, auths, true
}

// contentLines splits text into trimmed non-blank lines with header and
// footer boilerplate removed.
func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if matchesAny(extendedHeaderPatterns, line) {
			continue
		}
		if utf8.RuneCountInString(line) < minBlockLen {
			continue
		}
		out = append(out, line)
	}
	return out
}

// bestTitleLine scores the first titleScanLines content lines and
// returns the winner. Ties keep the earliest line.
func bestTitleLine(content []string) (string, int) {
	best := ""
	bestIdx := 0
	bestScore := 0
	first := true

	limit := len(content)
	if limit > titleScanLines {
		limit = titleScanLines
	}
	for i := 0; i < limit; i++ {
		score := scoreTitleCandidate(content[i], i)
		if first || score > bestScore {
			first = false
			bestScore = score
			best = content[i]
			bestIdx = i
		}
	}
	return best, bestIdx
}

// scoreTitleCandidate rates one line as a title candidate. Longer lines
// score higher; positions further down, metadata shapes, addresses and
// author-line shapes are penalized; title-shaped prose and long CJK
// lines get a bonus.
func scoreTitleCandidate(line string, index int) int {
	runes := []rune(line)
	length := len(runes)
	score := length
	score -= index * 10

	if idx := colonIndex(runes); idx >= 0 {
		rest := strings.TrimSpace(string(runes[idx+1:]))
		switch {
		case utf8.RuneCountInString(rest) > 15:
			score -= 5 // subtitle shape, mild penalty
		case length < 40:
			score -= 50
		default:
			score -= 15
		}
	}

	digits := 0
	lower := 0
	cjk := 0
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLower(r):
			lower++
		case r >= 0x4e00 && r <= 0x9fff:
			cjk++
		}
	}
	if float64(digits) > 0.3*float64(length) {
		score -= 80
	}
	if length < 20 {
		score -= 30
	}
	if parenYearRe.MatchString(line) {
		score -= 40
	}
	if containsAny(strings.ToLower(line), addressKeywords) {
		score -= 100
	}
	if (strings.Contains(line, "*") || strings.Contains(line, "∗")) && strings.Contains(line, ",") {
		score -= 60
	}
	if line == strings.ToUpper(line) && length > 5 {
		score -= 60
	}
	if length < 30 && venueShapedRe.MatchString(line) {
		score -= 40
	}
	if float64(lower) > 0.5*float64(length) && length > 30 {
		score += 20
	}
	if cjk > 5 && length > 15 {
		score += 15
	}
	return score
}

func colonIndex(runes []rune) int {
	ascii := -1
	wide := -1
	for i, r := range runes {
		if r == ':' && ascii < 0 {
			ascii = i
		}
		if r == '：' && wide < 0 {
			wide = i
		}
	}
	if ascii >= 0 {
		return ascii
	}
	return wide
}

// extendTitle appends the following line when it looks like a title
// continuation rather than an author line, section keyword or metadata.
func extendTitle(content []string, title string, titleIdx int) (string, int) {
	if title == "" || titleIdx+1 >= len(content) {
		return title, titleIdx
	}
	next := content[titleIdx+1]

	isAuthorLine := (strings.Contains(next, ",") || strings.Contains(next, "，")) &&
		(strings.Contains(next, "*") || namePairRe.MatchString(next))
	lower := strings.ToLower(next)
	isKeyword := strings.Contains(lower, "abstract") ||
		strings.Contains(lower, "introduction") ||
		strings.Contains(next, "摘")
	isMetadata := strings.Contains(next, ":") && utf8.RuneCountInString(next) < 30
	hasCJKNames := cjkNameLeadRe.MatchString(next)

	if isAuthorLine || isKeyword || isMetadata || hasCJKNames {
		return title, titleIdx
	}
	nextLen := utf8.RuneCountInString(next)
	if nextLen < utf8.RuneCountInString(title) && nextLen > 5 {
		return title + " " + next, titleIdx + 1
	}
	return title, titleIdx
}

// authorsAfterTitle scans up to authorScanLines lines after the title
// for the author line, stopping once body text starts.
func authorsAfterTitle(content []string, titleIdx int) []meta.Author {
	end := titleIdx + 1 + authorScanLines
	if end > len(content) {
		end = len(content)
	}
	for _, line := range content[titleIdx+1 : end] {
		lower := strings.ToLower(line)
		if containsAny(lower, bodyKeywords) {
			break
		}
		if strings.Contains(line, "摘") || strings.Contains(line, "关键词") {
			break
		}
		if containsAny(lower, []string{"department", "university", "college", "school", "institute"}) {
			continue
		}
		if strings.ContainsAny(line, ",，*") ||
			initialsLineRe.MatchString(line) ||
			namePairRe.MatchString(line) {
			if auths := authors.Parse(line); len(auths) > 0 {
				return auths
			}
		}
	}
	return nil
}
