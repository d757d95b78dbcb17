package summary

import (
	"fmt"
	"net/http"

	"github.com/gianpd/summarizerAI/internal/chunk"
	"github.com/gianpd/summarizerAI/internal/domain/entity"
	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
)

// ChunkHandler splits posted text into chunks of at most token_budget tokens.
type ChunkHandler struct {
	Counter       chunk.TokenCounter
	DefaultBudget int
}

func (h ChunkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ChunkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := entity.ValidateText(req.Text); err != nil {
		writeError(w, r, err)
		return
	}

	budget := req.TokenBudget
	if budget == 0 {
		budget = h.DefaultBudget
	}
	if budget <= 0 {
		writeError(w, r, fmt.Errorf("%w: token_budget must be positive", chunk.ErrInvalidArgument))
		return
	}

	chunks, err := chunk.New(h.Counter, budget).Chunk(req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if chunks == nil {
		chunks = []string{}
	}
	respond.JSON(w, http.StatusOK, ChunkResponse{Chunks: chunks, Count: len(chunks), TokenBudget: budget})
}
