package summary

import (
	"net/http"

	"github.com/gianpd/summarizerAI/internal/handler/http/pathutil"
	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

type GetHandler struct{ Svc *sumUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}
