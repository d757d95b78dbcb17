package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrInvalidParams is wrapped by every parsing error.
var ErrInvalidParams = errors.New("invalid pagination parameters")

// Params is an offset window.
type Params struct {
	Skip  int // Rows to skip, >= 0
	Limit int // Rows to return, 1..MaxLimit
}

// ParseQueryParams reads ?skip= and ?limit=, applying defaults for absent values.
//
//	GET /api/v1/summaries?skip=20&limit=10 → Params{Skip: 20, Limit: 10}
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Skip: 0, Limit: cfg.DefaultLimit}
	q := r.URL.Query()

	if s := q.Get("skip"); s != "" {
		skip, err := strconv.Atoi(s)
		if err != nil || skip < 0 {
			return params, fmt.Errorf("%w: skip must be a non-negative integer", ErrInvalidParams)
		}
		params.Skip = skip
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParams, cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
