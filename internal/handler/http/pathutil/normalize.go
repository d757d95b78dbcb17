package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/v1/summaries/keyword/[^/]+$`), Template: "/api/v1/summaries/keyword/:keyword"},
	{Pattern: regexp.MustCompile(`^/api/v1/summaries/\d+$`), Template: "/api/v1/summaries/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs or keywords to template form; other paths are returned
// unchanged.
//
// Examples:
//
//	NormalizePath("/api/v1/summaries/123")            // "/api/v1/summaries/:id"
//	NormalizePath("/api/v1/summaries/keyword/cinema") // "/api/v1/summaries/keyword/:keyword"
//	NormalizePath("/api/v1/summaries/text")           // "/api/v1/summaries/text" (unchanged)
//	NormalizePath("/health")                          // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/v1/summaries/123?x=1") // "/api/v1/summaries/:id"
//	NormalizePath("/api/v1/summaries/123/")    // "/api/v1/summaries/:id"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
