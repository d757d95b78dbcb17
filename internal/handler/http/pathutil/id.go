package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 ID.
//
// Example:
//
//	id, err := ParseID("123")
//	// Returns: 123, nil
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathID parses the route wildcard name (e.g. {id} in
// "GET /api/v1/summaries/{id}") as a positive ID.
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}
