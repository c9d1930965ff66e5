package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wlin-papers/papercite/internal/meta"
)

// WritePapersCSV writes a batch of processed papers as CSV.
func WritePapersCSV(w io.Writer, papers []*meta.Paper) error {
	cw := csv.NewWriter(w)

	header := []string{"Path", "Title", "Authors", "Year", "NewFilename", "Status", "Error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, p := range papers {
		row := []string{
			p.Path,
			p.Title,
			joinAuthors(p.Authors),
			strconv.Itoa(p.Year),
			p.NewFilename,
			string(p.Status),
			p.ErrorMessage,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes history records as CSV.
func WriteRecordsCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	header := []string{"Time", "OldPath", "NewPath", "Title", "Authors", "Year", "Status", "Error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Time.Format(time.RFC3339),
			rec.OldPath,
			rec.NewPath,
			rec.Title,
			joinAuthors(rec.Authors),
			strconv.Itoa(rec.Year),
			string(rec.Status),
			rec.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func joinAuthors(list []meta.Author) string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.FullName
	}
	return strings.Join(names, "; ")
}
