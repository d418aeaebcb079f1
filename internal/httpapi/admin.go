package httpapi

import (
	"net/http"

	"costmanager/internal/config"
	"costmanager/internal/log"
	"costmanager/internal/reqlog"
)

// NewAdminServer builds the Admin service HTTP surface. The roster is
// configuration, not data: /api/about serves it as-is, first and last name
// only.
func NewAdminServer(addr string, roster []config.TeamMember, logger *log.Logger, recorder reqlog.Recorder) *Server {
	return newServer(addr, "admin", "Admin Request", logger, recorder, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/about", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, roster)
		})
	})
}
