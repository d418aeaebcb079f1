package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"costmanager/internal/core"
	"costmanager/internal/log"
	"costmanager/internal/reqlog"
	"costmanager/internal/users"
)

type usersHandlers struct {
	svc *users.Service
}

// NewUsersServer builds the Users service HTTP surface.
func NewUsersServer(addr string, svc *users.Service, logger *log.Logger, recorder reqlog.Recorder) *Server {
	h := &usersHandlers{svc: svc}
	return newServer(addr, "users", "Users Service Request", logger, recorder, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/users", h.list)
		mux.HandleFunc("GET /api/users/{id}", h.get)
		mux.HandleFunc("POST /api/add", h.add)
	})
}

func (h *usersHandlers) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List users failed", log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, 0, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, all)
}

func (h *usersHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusNotFound, 0, "User not found")
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, core.ErrUnknownUser):
		writeError(w, r, http.StatusNotFound, id, "User not found")
	case err != nil:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Get user failed",
			log.FieldUserID, id, log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, id, err.Error())
	default:
		writeJSON(w, r, http.StatusOK, u)
	}
}

type addUserRequest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"`
}

func (h *usersHandlers) add(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusInternalServerError, 0, err.Error())
		return
	}

	u := core.User{ID: req.ID, FirstName: req.FirstName, LastName: req.LastName}
	if req.Birthday != "" {
		birthday, err := parseDate(req.Birthday)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, req.ID, "invalid birthday")
			return
		}
		u.Birthday = birthday
	}

	created, err := h.svc.Add(r.Context(), u)
	if err != nil {
		// Duplicate ids, missing fields and bad types all surface the same
		// way to existing clients.
		writeError(w, r, http.StatusInternalServerError, req.ID, err.Error())
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}
