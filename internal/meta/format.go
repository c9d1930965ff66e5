package meta

import "fmt"

// AuthorFormat selects how authors are rendered in generated filenames.
type AuthorFormat string

const (
	FirstSurname AuthorFormat = "first_surname"
	FirstFull    AuthorFormat = "first_full"
	AllSurnames  AuthorFormat = "all_surnames"
	AllFull      AuthorFormat = "all_full"
	NSurnames    AuthorFormat = "n_surnames"
	NFull        AuthorFormat = "n_full"
)

// AuthorFormats lists the supported format values in display order.
var AuthorFormats = []AuthorFormat{
	FirstSurname, FirstFull, AllSurnames, AllFull, NSurnames, NFull,
}

// ParseAuthorFormat validates and returns an AuthorFormat.
func ParseAuthorFormat(s string) (AuthorFormat, error) {
	for _, f := range AuthorFormats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown author format %q", s)
}

// Description returns a human-readable description of the format.
func (f AuthorFormat) Description() string {
	switch f {
	case FirstSurname:
		return "First author surname only (e.g., Wang)"
	case FirstFull:
		return "First author full name (e.g., Weihao Wang)"
	case AllSurnames:
		return "All authors surnames (e.g., Wang, Zhang, You)"
	case AllFull:
		return "All authors full names (e.g., Weihao Wang, Rufeng Zhang)"
	case NSurnames:
		return "First N authors surnames"
	case NFull:
		return "First N authors full names"
	}
	return ""
}
