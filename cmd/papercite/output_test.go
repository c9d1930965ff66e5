package main

import (
	"testing"

	"github.com/wlin-papers/papercite/internal/meta"
)

func TestNewBatchResult(t *testing.T) {
	papers := []*meta.Paper{
		{Path: "/a.pdf", Status: meta.StatusSuccess},
		{Path: "/b.pdf", Status: meta.StatusError},
		{Path: "/c.pdf", Status: meta.StatusSuccess},
	}

	res := newBatchResult(papers, false)
	if res.Total != 3 || res.Success != 2 || res.Errors != 1 {
		t.Errorf("result = %d/%d/%d, want 3/2/1", res.Total, res.Success, res.Errors)
	}
	if res.DryRun {
		t.Error("DryRun should be false")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a very long title that needs cutting", 10, "a very ..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatAuthorsShort(t *testing.T) {
	authors := []meta.Author{
		{FullName: "Weihao Wang", Surname: "Wang"},
		{FullName: "Rufeng Zhang", Surname: "Zhang"},
		{FullName: "Mingyu You", Surname: "You"},
	}

	if got := formatAuthorsShort(authors, 2); got != "Weihao Wang, Rufeng Zhang, et al." {
		t.Errorf("formatAuthorsShort = %q", got)
	}
	if got := formatAuthorsShort(authors, 5); got != "Weihao Wang, Rufeng Zhang, Mingyu You" {
		t.Errorf("formatAuthorsShort = %q", got)
	}
	if got := formatAuthorsShort(nil, 3); got != "" {
		t.Errorf("formatAuthorsShort(nil) = %q", got)
	}
}
