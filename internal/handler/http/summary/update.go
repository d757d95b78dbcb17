package summary

import (
	"net/http"

	"github.com/gianpd/summarizerAI/internal/handler/http/pathutil"
	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

type UpdateHandler struct{ Svc *sumUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req UpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.Svc.Update(r.Context(), sumUC.UpdateInput{
		ID:       id,
		URL:      req.URL,
		Summary:  req.Summary,
		KeyTop:   req.KeyTop,
		Keywords: req.Keywords,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}
