package summary

import (
	"net/http"

	"github.com/gianpd/summarizerAI/internal/handler/http/pathutil"
	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// DeleteHandler removes a summary and returns the deleted record.
type DeleteHandler struct{ Svc *sumUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}
