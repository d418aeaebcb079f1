package httpapi

import (
	"context"
	"net/http"

	"costmanager/internal/log"
	"costmanager/internal/reqlog"
)

// LogReader is the Logs service's read model over the request log.
type LogReader interface {
	All(ctx context.Context) ([]reqlog.Entry, error)
}

type logsHandlers struct {
	reader LogReader
}

// NewLogsServer builds the Logs service HTTP surface.
func NewLogsServer(addr string, reader LogReader, logger *log.Logger, recorder reqlog.Recorder) *Server {
	h := &logsHandlers{reader: reader}
	return newServer(addr, "logs", "Logs Service Request", logger, recorder, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/logs", h.list)
	})
}

func (h *logsHandlers) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reader.All(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List logs failed", log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, 0, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}
