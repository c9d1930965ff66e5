package extract

import (
	"strings"
	"testing"
)

// fakeSource serves canned text and blocks for a single path.
type fakeSource struct {
	firstPage string
	multiPage string
	blocks    []TextBlock
}

func (f *fakeSource) FirstPageText(string) (string, error)     { return f.firstPage, nil }
func (f *fakeSource) MultiPageText(string, int) (string, error) { return f.multiPage, nil }
func (f *fakeSource) TextBlocks(string) ([]TextBlock, error)   { return f.blocks, nil }

func TestStructured(t *testing.T) {
	src := &fakeSource{
		blocks: []TextBlock{
			{Text: "Contents lists available at ScienceDirect", FontSize: 8, VPos: 40},
			{Text: "journal homepage: www.elsevier.com/locate/xyz", FontSize: 7, VPos: 60},
			{Text: "Robust Perception for Autonomous Driving", FontSize: 18, VPos: 150},
			{Text: "in Adverse Weather Conditions", FontSize: 18, VPos: 172},
			{Text: "Weihao Wang, Rufeng Zhang, Mingyu You", FontSize: 10, VPos: 210},
			{Text: "Department of Computer Science, Tongji University", FontSize: 8, VPos: 230},
			{Text: "Abstract. Perception systems degrade in rain and fog.", FontSize: 9, VPos: 280},
			{Text: "© 2023 Elsevier Ltd.", FontSize: 6, VPos: 700},
		},
	}
	eng := NewEngine(src)

	res, err := eng.Structured("paper.pdf")
	if err != nil {
		t.Fatalf("Structured: %v", err)
	}
	want := "Robust Perception for Autonomous Driving in Adverse Weather Conditions"
	if res.Title != want {
		t.Errorf("title = %q, want %q", res.Title, want)
	}
	surnames := make([]string, len(res.Authors))
	for i, a := range res.Authors {
		surnames[i] = a.Surname
	}
	if strings.Join(surnames, ",") != "Wang,Zhang,You" {
		t.Errorf("surnames = %v", surnames)
	}
	if res.Year != 2023 {
		t.Errorf("year = %d, want 2023", res.Year)
	}
}

func TestStructuredMastheadCutoff(t *testing.T) {
	// A large-font journal name inside the masthead zone must not be
	// mistaken for the title.
	src := &fakeSource{
		blocks: []TextBlock{
			{Text: "Expert Systems With Applications www.journals.com", FontSize: 20, VPos: 50},
			{Text: "Graph Neural Networks for Traffic Forecasting", FontSize: 16, VPos: 120},
			{Text: "John Smith and Jane Doe", FontSize: 10, VPos: 160},
		},
	}
	res, err := NewEngine(src).Structured("p.pdf")
	if err != nil {
		t.Fatalf("Structured: %v", err)
	}
	if res.Title != "Graph Neural Networks for Traffic Forecasting" {
		t.Errorf("title = %q", res.Title)
	}
	if len(res.Authors) != 2 || res.Authors[1].Surname != "Doe" {
		t.Errorf("authors = %v", res.Authors)
	}
}

func TestStructuredEmpty(t *testing.T) {
	res, err := NewEngine(&fakeSource{}).Structured("p.pdf")
	if err != nil {
		t.Fatalf("Structured: %v", err)
	}
	if res.Title != "" || len(res.Authors) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestStructuredYearFromLaterPages(t *testing.T) {
	src := &fakeSource{
		blocks: []TextBlock{
			{Text: "A Title Without Any Date Information Nearby", FontSize: 16, VPos: 100},
			{Text: "Alice Adams, Bob Brown", FontSize: 10, VPos: 140},
		},
		multiPage: "References\n[1] Something. Published: 2021.",
	}
	res, err := NewEngine(src).Structured("p.pdf")
	if err != nil {
		t.Fatalf("Structured: %v", err)
	}
	if res.Year != 2021 {
		t.Errorf("year = %d, want 2021 from multi-page text", res.Year)
	}
}

func TestFallback(t *testing.T) {
	src := &fakeSource{
		firstPage: strings.Join([]string{
			"Journal of Computing",
			"Vol. 12, No. 3",
			"Self-Supervised Representation Learning for Medical Image Analysis",
			"Weihao Wang*, Rufeng Zhang, Mingyu You",
			"Department of Computer Science, Tongji University",
			"Abstract. We propose a self-supervised method.",
			"Published: March 2022",
		}, "\n"),
	}
	res, err := NewEngine(src).Fallback("p.pdf")
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	if res.Title != "Self-Supervised Representation Learning for Medical Image Analysis" {
		t.Errorf("title = %q", res.Title)
	}
	if len(res.Authors) != 3 || res.Authors[0].Surname != "Wang" {
		t.Errorf("authors = %v", res.Authors)
	}
	if res.Year != 2022 {
		t.Errorf("year = %d, want 2022", res.Year)
	}
}

func TestFallbackTitleContinuation(t *testing.T) {
	src := &fakeSource{
		firstPage: strings.Join([]string{
			"A Comprehensive Survey of Deep Learning Approaches for Anomaly",
			"Detection in Distributed Systems",
			"Alice Adams, Bob Brown",
			"Abstract. Anomaly detection matters.",
		}, "\n"),
	}
	res, err := NewEngine(src).Fallback("p.pdf")
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	want := "A Comprehensive Survey of Deep Learning Approaches for Anomaly Detection in Distributed Systems"
	if res.Title != want {
		t.Errorf("title = %q, want continuation merged", res.Title)
	}
	if len(res.Authors) != 2 {
		t.Errorf("authors = %v", res.Authors)
	}
}

func TestFallbackChineseThesis(t *testing.T) {
	src := &fakeSource{
		firstPage: "论文题目：基于深度学习的图像识别方法研究\n作者姓名：李明\n指导教师：王芳\n2023年6月",
	}
	res, err := NewEngine(src).Fallback("p.pdf")
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	if res.Title != "基于深度学习的图像识别方法研究" {
		t.Errorf("title = %q", res.Title)
	}
	if len(res.Authors) == 0 || res.Authors[0].FullName != "李明" || res.Authors[0].Surname != "李" {
		t.Errorf("authors = %v", res.Authors)
	}
	if res.Year != 2023 {
		t.Errorf("year = %d, want 2023", res.Year)
	}
}

func TestFallbackEmptyText(t *testing.T) {
	res, err := NewEngine(&fakeSource{}).Fallback("p.pdf")
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	if res.Title != "" || res.Year != 0 {
		t.Errorf("expected zero result, got %+v", res)
	}
}

func TestStripOCRHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wang<sup>1,2</sup> and Zhang", "Wang and Zhang"},
		{"H<sub>2</sub>O studies", "HO studies"},
		{"line one<br>line two", "line one line two"},
		{"<b>Bold Title</b>", "Bold Title"},
		{"a  b   c", "a b c"},
	}
	for _, tt := range tests {
		if got := StripOCRHTML(tt.in); got != tt.want {
			t.Errorf("StripOCRHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreTitleCandidate(t *testing.T) {
	title := "Self-Supervised Representation Learning for Medical Image Analysis"
	cases := []string{
		"Journal of Computing",                        // venue-shaped
		"Department of Computer Science, University",  // address
		"Weihao Wang*, Rufeng Zhang, Mingyu You",      // author line
		"(2019) 1437",                                 // citation digits
	}
	titleScore := scoreTitleCandidate(title, 0)
	for _, c := range cases {
		if s := scoreTitleCandidate(c, 0); s >= titleScore {
			t.Errorf("scoreTitleCandidate(%q) = %d, want < title score %d", c, s, titleScore)
		}
	}
}
