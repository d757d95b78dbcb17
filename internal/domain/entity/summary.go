// Package entity defines the domain entities of the summarizer service and
// their validation rules.
package entity

import (
	"strings"
	"time"
)

// Summary is a stored summary of a web article.
//
// A Summary with an empty Summary field is pending: it has been accepted
// and its content is still being generated in the background.
type Summary struct {
	ID        int64
	URL       string
	Summary   string
	KeyTop    string
	Keywords  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Pending reports whether the summary text has not been generated yet.
func (s *Summary) Pending() bool {
	return strings.TrimSpace(s.Summary) == ""
}

// KeywordList returns KeyTop followed by the comma separated Keywords.
func (s *Summary) KeywordList() []string {
	var out []string
	if s.KeyTop != "" {
		out = append(out, s.KeyTop)
	}
	for _, k := range strings.Split(s.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SetKeywords stores the first keyword as KeyTop and the rest joined with ", ".
func (s *Summary) SetKeywords(keywords []string) {
	s.KeyTop, s.Keywords = "", ""
	if len(keywords) == 0 {
		return
	}
	s.KeyTop = keywords[0]
	s.Keywords = strings.Join(keywords[1:], ", ")
}

// Validate checks the fields a client can set.
func (s *Summary) Validate() error {
	return ValidateURL(s.URL)
}
