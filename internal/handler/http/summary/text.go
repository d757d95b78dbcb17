package summary

import (
	"net/http"

	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// TextHandler summarizes the posted text synchronously without storing it.
type TextHandler struct{ Svc *sumUC.Service }

func (h TextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.Svc.FromText(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, TextResponse{Text: out.Text, Summary: out.Summary})
}
