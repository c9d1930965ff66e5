package meta

import "path/filepath"

// Status tracks a paper's position in the processing lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusSkip    Status = "skip"
)

// Paper holds metadata extracted from a single PDF and the
// processing outcome. Created once per file; mutated in place
// through the extraction, validation and filename stages.
type Paper struct {
	Path         string   `json:"path"`
	Title        string   `json:"title,omitempty"`
	Authors      []Author `json:"authors,omitempty"`
	Year         int      `json:"year,omitempty"`
	NewFilename  string   `json:"new_filename,omitempty"`
	Status       Status   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// OriginalFilename returns the base name of the source file.
func (p *Paper) OriginalFilename() string {
	return filepath.Base(p.Path)
}

// IsValid reports whether the paper carries complete extracted data.
func (p *Paper) IsValid() bool {
	return p.Title != "" && len(p.Authors) > 0 && p.Year != 0
}

// FirstAuthor returns the first author, or a zero Author if none.
func (p *Paper) FirstAuthor() Author {
	if len(p.Authors) == 0 {
		return Author{}
	}
	return p.Authors[0]
}

// Surnames returns the surnames of all authors in order.
func (p *Paper) Surnames() []string {
	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		names[i] = a.Surname
	}
	return names
}
