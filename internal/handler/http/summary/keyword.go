package summary

import (
	"net/http"

	"github.com/gianpd/summarizerAI/internal/handler/http/respond"
	sumUC "github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// KeywordHandler lists summaries tagged with the {keyword} path segment.
// No match is a 404.
type KeywordHandler struct{ Svc *sumUC.Service }

func (h KeywordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.SearchByKeyword(r.Context(), r.PathValue("keyword"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(items))
}
