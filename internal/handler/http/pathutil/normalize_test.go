package pathutil

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "summary id", path: "/api/v1/summaries/123", expected: "/api/v1/summaries/:id"},
		{name: "summary id trailing slash", path: "/api/v1/summaries/123/", expected: "/api/v1/summaries/:id"},
		{name: "summary id with query", path: "/api/v1/summaries/123?verbose=1", expected: "/api/v1/summaries/:id"},
		{name: "keyword", path: "/api/v1/summaries/keyword/cinema", expected: "/api/v1/summaries/keyword/:keyword"},
		{name: "escaped keyword", path: "/api/v1/summaries/keyword/social%20media", expected: "/api/v1/summaries/keyword/:keyword"},
		{name: "text endpoint", path: "/api/v1/summaries/text", expected: "/api/v1/summaries/text"},
		{name: "collection", path: "/api/v1/summaries", expected: "/api/v1/summaries"},
		{name: "chunks", path: "/api/v1/chunks", expected: "/api/v1/chunks"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "root", path: "/", expected: "/"},
		{name: "unknown", path: "/unknown/path/123", expected: "/unknown/path/123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePath(tt.path))
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 1; i <= 500; i++ {
		seen[NormalizePath("/api/v1/summaries/"+strconv.Itoa(i))] = struct{}{}
		seen[NormalizePath("/api/v1/summaries/keyword/k"+strconv.Itoa(i))] = struct{}{}
	}
	assert.Len(t, seen, 2)
}
