// Package meta defines the data model for extracted paper metadata.
package meta

// Author represents a paper author with full name and surname.
// Surname is the last name word for Latin scripts, or the first
// character for Chinese names.
type Author struct {
	FullName string `json:"full_name"`
	Surname  string `json:"surname"`
}

// String returns the author's full name.
func (a Author) String() string {
	return a.FullName
}

// IsChinese reports whether the author's name is primarily Chinese:
// at least half CJK characters and at least two of them.
func (a Author) IsChinese() bool {
	if a.FullName == "" {
		return false
	}
	total := 0
	cjk := 0
	for _, r := range a.FullName {
		total++
		if r >= 0x4e00 && r <= 0x9fff {
			cjk++
		}
	}
	return cjk*2 >= total && cjk >= 2
}
