package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gianpd/summarizerAI/internal/common/pagination"
	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	"github.com/gianpd/summarizerAI/internal/observability/logging"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// ListHandler returns one page of summaries:
//
//	GET /api/v1/summaries?skip=0&limit=100
//	{"data": [...], "pagination": {"total": 3, "skip": 0, "limit": 100, "has_more": false}}
type ListHandler struct {
	Svc           *sumUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.Any("error", err))
		writeError(w, r, err)
		return
	}

	result, err := h.Svc.List(ctx, params)
	if err != nil {
		logger.Error("failed to list summaries",
			slog.Any("error", err),
			slog.Int("skip", params.Skip),
			slog.Int("limit", params.Limit))
		writeError(w, r, err)
		return
	}

	logger.Debug("listed summaries",
		slog.Int("skip", params.Skip),
		slog.Int("limit", params.Limit),
		slog.Int("returned", len(result.Data)),
		slog.Int64("total", result.Pagination.Total),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Data), result.Pagination))
}
