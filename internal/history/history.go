// Package history persists rename operations in an append-only JSONL
// log, with a SQLite cache for listing and search.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wlin-papers/papercite/internal/meta"
)

// MaxLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line).
const MaxLineCapacity = 1024 * 1024

// dataDirName is the directory name under XDG_DATA_HOME.
const dataDirName = "papercite"

// LogFile is the JSONL log file name.
const LogFile = "history.jsonl"

// Record is one rename operation as written to the log. The JSONL file
// is the source of truth; the SQLite cache is rebuilt from it.
type Record struct {
	Time    time.Time     `json:"time"`
	OldPath string        `json:"old_path"`
	NewPath string        `json:"new_path"`
	Title   string        `json:"title"`
	Authors []meta.Author `json:"authors,omitempty"`
	Year    int           `json:"year,omitempty"`
	Status  meta.Status   `json:"status"`
	Error   string        `json:"error,omitempty"`
}

// FromPaper converts a processed paper into a log record. OldPath keeps
// the pre-rename location, so call this before ApplyRenames mutates the
// paper, or pass the saved original path.
func FromPaper(p *meta.Paper, oldPath string, now time.Time) Record {
	return Record{
		Time:    now,
		OldPath: oldPath,
		NewPath: p.Path,
		Title:   p.Title,
		Authors: p.Authors,
		Year:    p.Year,
		Status:  p.Status,
		Error:   p.ErrorMessage,
	}
}

// DataDir returns the history data directory.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/papercite.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, dataDirName)
}

// LogPath returns the path of the JSONL log file.
func LogPath() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, LogFile)
}

// Append adds records to the end of the JSONL log, creating the file
// and its directory as needed.
func Append(path string, records ...Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history log for append: %w", err)
	}
	defer f.Close()

	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// ReadAll reads all records from the JSONL log. A missing file returns
// an empty slice.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxLineCapacity)
	scanner.Buffer(buf, MaxLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history log: %w", err)
	}

	return records, nil
}
