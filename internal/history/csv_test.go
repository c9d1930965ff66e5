package history

import (
	"strings"
	"testing"

	"github.com/wlin-papers/papercite/internal/meta"
)

func TestWritePapersCSV(t *testing.T) {
	papers := []*meta.Paper{
		{
			Path:  "/papers/a.pdf",
			Title: "Deep Learning Methods",
			Authors: []meta.Author{
				{FullName: "Weihao Wang", Surname: "Wang"},
				{FullName: "Rufeng Zhang", Surname: "Zhang"},
			},
			Year:        2023,
			NewFilename: "Wang et al. (2023) - Deep Learning Methods.pdf",
			Status:      meta.StatusSuccess,
		},
		{
			Path:         "/papers/broken.pdf",
			Status:       meta.StatusError,
			ErrorMessage: "Could not extract valid title or authors",
		},
	}

	var b strings.Builder
	if err := WritePapersCSV(&b, papers); err != nil {
		t.Fatalf("WritePapersCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "Path,Title,Authors,Year,NewFilename,Status,Error" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Weihao Wang; Rufeng Zhang") {
		t.Errorf("row = %q, want joined authors", lines[1])
	}
	if !strings.Contains(lines[2], "Could not extract valid title or authors") {
		t.Errorf("row = %q, want error message", lines[2])
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteRecordsCSV(&b, sampleRecords()); err != nil {
		t.Fatalf("WriteRecordsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "Time,OldPath,NewPath,Title,Authors,Year,Status,Error" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2024-03-01T12:00:00Z") {
		t.Errorf("row = %q, want RFC3339 timestamp", lines[1])
	}
}
