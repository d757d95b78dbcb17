package summary

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gianpd/summarizerAI/internal/chunk"
	"github.com/gianpd/summarizerAI/internal/common/pagination"
	"github.com/gianpd/summarizerAI/internal/domain/entity"
	"github.com/gianpd/summarizerAI/internal/handler/http/pathutil"
	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	"github.com/gianpd/summarizerAI/internal/observability/logging"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

var (
	errMalformedBody = errors.New("malformed JSON body")
	errBodyTooLarge  = errors.New("request body too large")
)

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
		case errors.Is(err, io.EOF):
			respond.SafeError(w, http.StatusBadRequest, errors.New("request body is required"))
		default:
			respond.SafeError(w, http.StatusBadRequest, errMalformedBody)
		}
		return false
	}
	return true
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sumUC.ErrSummaryNotFound):
		return http.StatusNotFound
	case errors.Is(err, sumUC.ErrInvalidSummaryID),
		errors.Is(err, sumUC.ErrEmptyText),
		errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, pathutil.ErrInvalidID),
		errors.Is(err, pagination.ErrInvalidParams),
		errors.Is(err, chunk.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status mapped from err. Server errors are also
// logged with the request-scoped logger installed by the Logging middleware.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "summary request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	respond.SafeError(w, code, err)
}
