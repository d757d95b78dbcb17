package summary

import (
	"log/slog"
	"net/http"

	"github.com/gianpd/summarizerAI/internal/chunk"
	"github.com/gianpd/summarizerAI/internal/common/pagination"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// Deps are the collaborators of the summary routes.
type Deps struct {
	Svc           *sumUC.Service
	PaginationCfg pagination.Config
	Counter       chunk.TokenCounter
	ChunkBudget   int
	Logger        *slog.Logger
}

// Register mounts the summary and chunk routes under /api/v1.
// Every item route also answers with a trailing slash.
func Register(mux *http.ServeMux, d Deps) {
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, h)
		mux.Handle(pattern+"/{$}", h)
	}

	handle("POST /api/v1/summaries", CreateHandler{d.Svc})
	handle("GET /api/v1/summaries", ListHandler{Svc: d.Svc, PaginationCfg: d.PaginationCfg, Logger: d.Logger})
	handle("POST /api/v1/summaries/text", TextHandler{d.Svc})
	handle("GET /api/v1/summaries/keyword/{keyword}", KeywordHandler{d.Svc})
	handle("GET /api/v1/summaries/{id}", GetHandler{d.Svc})
	handle("PUT /api/v1/summaries/{id}", UpdateHandler{d.Svc})
	handle("DELETE /api/v1/summaries/{id}", DeleteHandler{d.Svc})

	handle("POST /api/v1/chunks", ChunkHandler{Counter: d.Counter, DefaultBudget: d.ChunkBudget})
}
