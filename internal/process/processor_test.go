package process

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wlin-papers/papercite/internal/extract"
	"github.com/wlin-papers/papercite/internal/meta"
)

// fakeSource serves canned first-page text keyed by file basename and
// never yields text blocks, forcing the plain-text fallback.
type fakeSource struct {
	pages  map[string]string
	blowUp bool
}

func (f *fakeSource) FirstPageText(path string) (string, error) {
	if f.blowUp {
		panic("reader blew up")
	}
	text, ok := f.pages[filepath.Base(path)]
	if !ok {
		return "", errors.New("malformed xref table")
	}
	return text, nil
}

func (f *fakeSource) MultiPageText(path string, maxPages int) (string, error) {
	return f.FirstPageText(path)
}

func (f *fakeSource) TextBlocks(path string) ([]extract.TextBlock, error) {
	if f.blowUp {
		panic("reader blew up")
	}
	return nil, errors.New("no font info")
}

const goodPage = `Journal of Computing
Vol. 12, No. 3
Self-Supervised Representation Learning for Medical Image Analysis
Weihao Wang*, Rufeng Zhang, Mingyu You
Department of Computer Science, Tongji University
Abstract. We propose a self-supervised method.
Published: March 2022`

func newTestProcessor(src extract.Source) *Processor {
	return New(extract.NewEngine(src))
}

func TestProcessOne(t *testing.T) {
	p := newTestProcessor(&fakeSource{pages: map[string]string{"a.pdf": goodPage}})

	paper := p.ProcessOne("/papers/a.pdf")
	if paper.Status != meta.StatusSuccess {
		t.Fatalf("status = %q (%s)", paper.Status, paper.ErrorMessage)
	}
	if paper.Year != 2022 {
		t.Errorf("year = %d, want 2022", paper.Year)
	}
	want := "Wang et al. (2022) - Self-Supervised Representation Learning for Medical Image Analysis.pdf"
	if paper.NewFilename != want {
		t.Errorf("filename = %q, want %q", paper.NewFilename, want)
	}
}

func TestProcessOneFallbackYear(t *testing.T) {
	page := strings.Join(strings.Split(goodPage, "\n")[:6], "\n")
	p := newTestProcessor(&fakeSource{pages: map[string]string{"a.pdf": page}})
	p.FallbackYear = 2021

	paper := p.ProcessOne("/papers/a.pdf")
	if paper.Status != meta.StatusSuccess {
		t.Fatalf("status = %q (%s)", paper.Status, paper.ErrorMessage)
	}
	if paper.Year != 2021 {
		t.Errorf("year = %d, want configured fallback 2021", paper.Year)
	}
}

func TestProcessOneUnreadable(t *testing.T) {
	p := newTestProcessor(&fakeSource{})

	paper := p.ProcessOne("/papers/broken.pdf")
	if paper.Status != meta.StatusError {
		t.Fatalf("status = %q, want error", paper.Status)
	}
	if paper.ErrorMessage != errNoMetadata {
		t.Errorf("message = %q", paper.ErrorMessage)
	}
}

func TestProcessOneRecoversPanic(t *testing.T) {
	p := newTestProcessor(&fakeSource{blowUp: true})

	paper := p.ProcessOne("/papers/a.pdf")
	if paper.Status != meta.StatusError {
		t.Fatalf("status = %q, want error", paper.Status)
	}
	if !strings.Contains(paper.ErrorMessage, "reader blew up") {
		t.Errorf("message = %q", paper.ErrorMessage)
	}
}

func TestProcessDirectoryFaultIsolation(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"good.pdf", "BROKEN.PDF", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p := newTestProcessor(&fakeSource{pages: map[string]string{"good.pdf": goodPage}})
	papers, err := p.ProcessDirectory(dir, false)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2 (txt skipped, .PDF matched)", len(papers))
	}

	byName := map[string]*meta.Paper{}
	for _, paper := range papers {
		byName[paper.OriginalFilename()] = paper
	}
	if byName["good.pdf"].Status != meta.StatusSuccess {
		t.Errorf("good.pdf status = %q", byName["good.pdf"].Status)
	}
	if byName["BROKEN.PDF"].Status != meta.StatusError {
		t.Errorf("BROKEN.PDF status = %q", byName["BROKEN.PDF"].Status)
	}
}

func TestProcessDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "good.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestProcessor(&fakeSource{pages: map[string]string{"good.pdf": goodPage}})

	papers, err := p.ProcessDirectory(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 0 {
		t.Errorf("flat scan found %d papers, want 0", len(papers))
	}

	papers, err = p.ProcessDirectory(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 1 {
		t.Errorf("recursive scan found %d papers, want 1", len(papers))
	}
}

func TestApplyRenames(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "2301.00001.pdf")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paper := &meta.Paper{
		Path:        old,
		NewFilename: "Wang (2023) - Title.pdf",
		Status:      meta.StatusSuccess,
	}
	New(nil).ApplyRenames([]*meta.Paper{paper}, false)

	want := filepath.Join(dir, "Wang (2023) - Title.pdf")
	if paper.Path != want {
		t.Errorf("path = %q, want %q", paper.Path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("old file still present")
	}
}

func TestApplyRenamesCollision(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "download.pdf")
	taken := filepath.Join(dir, "Wang (2023) - Title.pdf")
	for _, path := range []string{old, taken} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paper := &meta.Paper{
		Path:        old,
		NewFilename: "Wang (2023) - Title.pdf",
		Status:      meta.StatusSuccess,
	}
	New(nil).ApplyRenames([]*meta.Paper{paper}, false)

	if paper.NewFilename != "Wang (2023) - Title (2).pdf" {
		t.Errorf("filename = %q, want disambiguated (2)", paper.NewFilename)
	}
	if _, err := os.Stat(filepath.Join(dir, "Wang (2023) - Title (2).pdf")); err != nil {
		t.Errorf("disambiguated file missing: %v", err)
	}
}

func TestApplyRenamesAlreadyNamed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Wang (2023) - Title.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paper := &meta.Paper{
		Path:        path,
		NewFilename: "Wang (2023) - Title.pdf",
		Status:      meta.StatusSuccess,
	}
	New(nil).ApplyRenames([]*meta.Paper{paper}, false)

	if paper.NewFilename != "Wang (2023) - Title.pdf" {
		t.Errorf("filename = %q, should not gain a counter", paper.NewFilename)
	}
	if paper.Path != path {
		t.Errorf("path = %q, want unchanged", paper.Path)
	}
}

func TestApplyRenamesDryRun(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "download.pdf")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paper := &meta.Paper{
		Path:        old,
		NewFilename: "Wang (2023) - Title.pdf",
		Status:      meta.StatusSuccess,
	}
	New(nil).ApplyRenames([]*meta.Paper{paper}, true)

	if paper.Path != old {
		t.Errorf("dry run moved path to %q", paper.Path)
	}
	if _, err := os.Stat(old); err != nil {
		t.Errorf("dry run renamed the file: %v", err)
	}
}

func TestApplyRenamesSkipsErrors(t *testing.T) {
	paper := &meta.Paper{
		Path:         "/papers/broken.pdf",
		Status:       meta.StatusError,
		ErrorMessage: errNoMetadata,
	}
	New(nil).ApplyRenames([]*meta.Paper{paper}, false)
	if paper.Path != "/papers/broken.pdf" {
		t.Errorf("error paper was renamed to %q", paper.Path)
	}
}

func TestApplyRenamesFailureDemotes(t *testing.T) {
	paper := &meta.Paper{
		Path:        filepath.Join(t.TempDir(), "missing.pdf"),
		NewFilename: "Wang (2023) - Title.pdf",
		Status:      meta.StatusSuccess,
	}
	New(nil).ApplyRenames([]*meta.Paper{paper}, false)

	if paper.Status != meta.StatusError {
		t.Fatalf("status = %q, want error", paper.Status)
	}
	if !strings.HasPrefix(paper.ErrorMessage, "Rename failed:") {
		t.Errorf("message = %q", paper.ErrorMessage)
	}
}

func TestRegenerate(t *testing.T) {
	p := New(nil)
	p.Format = meta.AllSurnames

	paper := &meta.Paper{
		Path:    "/papers/a.pdf",
		Title:   "Edited Title",
		Authors: []meta.Author{{FullName: "Wei Wang", Surname: "Wang"}, {FullName: "Li Chen", Surname: "Chen"}},
		Year:    2020,
		Status:  meta.StatusError,
	}
	p.Regenerate(paper)

	if paper.Status != meta.StatusSuccess {
		t.Errorf("status = %q, want success", paper.Status)
	}
	if paper.NewFilename != "Wang, Chen (2020) - Edited Title.pdf" {
		t.Errorf("filename = %q", paper.NewFilename)
	}
}

func TestRegenerateIncomplete(t *testing.T) {
	paper := &meta.Paper{Path: "/papers/a.pdf", Title: "Only Title", Status: meta.StatusError}
	New(nil).Regenerate(paper)
	if paper.Status != meta.StatusError || paper.NewFilename != "" {
		t.Errorf("incomplete paper regenerated: %+v", paper)
	}
}
