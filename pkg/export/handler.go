package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/magicalhair/citas/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	exporter *Exporter
}

func NewHandler(exporter *Exporter) *Handler {
	return &Handler{exporter}
}

// Download serves all appointments as a tab-separated attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting appointments")
	doc, err := h.exporter.Render(r.Context())
	if errors.Is(err, ErrNoCitas) {
		rest.WriteError(w, http.StatusNotFound, NoCitasMessage, "")
		return
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "No se pudo exportar las citas.", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc.Content)); err != nil {
		log.Errorf("could not write export response: %v", err)
		return
	}
	h.exporter.delivered(r.Context(), doc, "downloaded")
}
