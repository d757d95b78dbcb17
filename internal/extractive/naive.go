package extractive

import "strings"

// Naive truncates the document to its first n '.'-delimited fragments.
// It is the last tier and cannot fail.
type Naive struct{}

func (Naive) Name() string { return "naive" }

func (Naive) Summarize(text string, n int) Result {
	return ok(Truncate(text, n))
}

// Truncate joins the first n non-blank fragments of text split on '.'
// with ". " and terminates the result with '.'. Blank input yields "".
func Truncate(text string, n int) string {
	var kept []string
	for _, frag := range strings.Split(text, ".") {
		if len(kept) == n {
			break
		}
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		kept = append(kept, frag)
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, ". ") + "."
}
