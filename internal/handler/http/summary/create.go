package summary

import (
	"net/http"

	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// CreateHandler accepts a URL and answers with the pending (or recently
// generated) summary record. Generation continues in the background.
type CreateHandler struct{ Svc *sumUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.Svc.CreateFromURL(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(rec))
}
