package history

import (
	"path/filepath"
	"testing"

	"github.com/wlin-papers/papercite/internal/meta"
)

func newTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	dir := t.TempDir()

	db, err := OpenDB(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	jsonlPath := filepath.Join(dir, "history.jsonl")
	if err := Append(jsonlPath, sampleRecords()...); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return db, jsonlPath
}

func TestRebuildAndList(t *testing.T) {
	db, jsonlPath := newTestDB(t)

	n, err := db.RebuildFromJSONL(jsonlPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL: %v", err)
	}
	if n != 2 {
		t.Fatalf("loaded %d records, want 2", n)
	}

	records, err := db.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].OldPath != "/papers/broken.pdf" {
		t.Errorf("first record = %q, want newest", records[0].OldPath)
	}
	if records[1].Title != "Deep Learning Methods" {
		t.Errorf("title = %q", records[1].Title)
	}
	if len(records[1].Authors) != 2 || records[1].Authors[0].Surname != "Wang" {
		t.Errorf("authors = %v", records[1].Authors)
	}
	if records[1].Status != meta.StatusSuccess {
		t.Errorf("status = %q", records[1].Status)
	}
}

func TestListLimit(t *testing.T) {
	db, jsonlPath := newTestDB(t)
	if _, err := db.RebuildFromJSONL(jsonlPath); err != nil {
		t.Fatal(err)
	}

	records, err := db.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestSearch(t *testing.T) {
	db, jsonlPath := newTestDB(t)
	if _, err := db.RebuildFromJSONL(jsonlPath); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"learning", 1},
		{"Wang", 1},
		{"quantum", 0},
	}
	for _, tt := range tests {
		records, err := db.Search(tt.query, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		if len(records) != tt.want {
			t.Errorf("Search(%q) = %d records, want %d", tt.query, len(records), tt.want)
		}
	}
}

func TestRebuildReplaces(t *testing.T) {
	db, jsonlPath := newTestDB(t)

	for i := 0; i < 2; i++ {
		if _, err := db.RebuildFromJSONL(jsonlPath); err != nil {
			t.Fatalf("rebuild %d: %v", i, err)
		}
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d after repeated rebuilds, want 2", count)
	}
}
