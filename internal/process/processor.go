// Package process orchestrates per-paper metadata extraction and
// collision-safe renaming.
package process

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wlin-papers/papercite/internal/authors"
	"github.com/wlin-papers/papercite/internal/extract"
	"github.com/wlin-papers/papercite/internal/filename"
	"github.com/wlin-papers/papercite/internal/meta"
)

// DefaultFallbackYear is used when no year can be extracted and none is
// configured.
const DefaultFallbackYear = 2024

// errNoMetadata is the terminal message when neither strategy produced
// usable metadata.
const errNoMetadata = "Could not extract valid title or authors"

// Processor extracts metadata and derives filenames for papers. It is
// stateless per call and safe for callers to fan out across files;
// rename batches must be serialized by the caller.
type Processor struct {
	Engine       *extract.Engine
	Format       meta.AuthorFormat
	NAuthors     int
	FallbackYear int
}

// New returns a Processor with the default author format and fallback
// year.
func New(engine *extract.Engine) *Processor {
	return &Processor{
		Engine:       engine,
		Format:       meta.FirstSurname,
		NAuthors:     3,
		FallbackYear: DefaultFallbackYear,
	}
}

// ProcessOne extracts metadata from a single PDF. Failures of any kind
// are recorded on the returned paper and never propagate, so one bad
// file cannot abort a batch.
func (p *Processor) ProcessOne(path string) (paper *meta.Paper) {
	paper = &meta.Paper{Path: path, Status: meta.StatusPending}

	defer func() {
		if v := recover(); v != nil {
			paper.Status = meta.StatusError
			paper.ErrorMessage = fmt.Sprint(v)
		}
	}()

	// Structured extraction first; extraction errors degrade to empty
	// results and trigger the plain-text fallback.
	res, err := p.Engine.Structured(path)
	if err != nil {
		res = extract.Result{}
	}
	if res.Title == "" || len(res.Authors) == 0 {
		fb, err := p.Engine.Fallback(path)
		if err == nil {
			res = fb
		}
	}

	paper.Title = res.Title
	paper.Authors = res.Authors
	paper.Year = res.Year
	if paper.Year == 0 {
		paper.Year = p.fallbackYear()
	}

	if paper.Title == "" || !authors.ValidList(paper.Authors) {
		paper.Status = meta.StatusError
		paper.ErrorMessage = errNoMetadata
		return paper
	}

	paper.NewFilename = filename.Generate(paper.Title, paper.Authors, paper.Year, p.Format, p.NAuthors)
	paper.Status = meta.StatusSuccess
	return paper
}

// ProcessDirectory processes every PDF under dir, optionally recursing
// into subdirectories. Papers are independent; there is no carried-over
// state between them.
func (p *Processor) ProcessDirectory(dir string, recursive bool) ([]*meta.Paper, error) {
	paths, err := listPDFs(dir, recursive)
	if err != nil {
		return nil, err
	}
	papers := make([]*meta.Paper, 0, len(paths))
	for _, path := range paths {
		papers = append(papers, p.ProcessOne(path))
	}
	return papers, nil
}

// ApplyRenames renames each successful paper to its derived filename.
// Existing destinations gain a numeric " (N)" disambiguator. A failed
// rename demotes that paper to error; already-applied renames are not
// rolled back.
func (p *Processor) ApplyRenames(papers []*meta.Paper, dryRun bool) []*meta.Paper {
	for _, paper := range papers {
		if paper.Status != meta.StatusSuccess || paper.NewFilename == "" {
			continue
		}

		dir := filepath.Dir(paper.Path)
		newPath := filepath.Join(dir, paper.NewFilename)

		if newPath != paper.Path {
			counter := 2
			for exists(newPath) {
				base := strings.TrimSuffix(paper.NewFilename, ".pdf")
				paper.NewFilename = fmt.Sprintf("%s (%d).pdf", base, counter)
				newPath = filepath.Join(dir, paper.NewFilename)
				counter++
			}
		}

		if dryRun {
			continue
		}
		if err := os.Rename(paper.Path, newPath); err != nil {
			paper.Status = meta.StatusError
			paper.ErrorMessage = fmt.Sprintf("Rename failed: %v", err)
			continue
		}
		paper.Path = newPath
	}
	return papers
}

// Regenerate rebuilds the derived filename after manual edits to the
// paper's title, authors or year.
func (p *Processor) Regenerate(paper *meta.Paper) *meta.Paper {
	if paper.Title != "" && len(paper.Authors) > 0 && paper.Year != 0 {
		paper.NewFilename = filename.Generate(paper.Title, paper.Authors, paper.Year, p.Format, p.NAuthors)
		paper.Status = meta.StatusSuccess
	}
	return paper
}

func (p *Processor) fallbackYear() int {
	if p.FallbackYear != 0 {
		return p.FallbackYear
	}
	return DefaultFallbackYear
}

func listPDFs(dir string, recursive bool) ([]string, error) {
	var paths []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
		return paths, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isPDF(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	return paths, nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
