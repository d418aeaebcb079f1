package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"costmanager/internal/core"
	"costmanager/internal/costs"
	"costmanager/internal/log"
	"costmanager/internal/reqlog"
)

type costsHandlers struct {
	svc *costs.Service
}

// NewCostsServer builds the Costs service HTTP surface.
func NewCostsServer(addr string, svc *costs.Service, logger *log.Logger, recorder reqlog.Recorder) *Server {
	h := &costsHandlers{svc: svc}
	return newServer(addr, "costs", "Costs Service Request", logger, recorder, func(mux *http.ServeMux) {
		mux.HandleFunc("POST /api/add", h.add)
		mux.HandleFunc("GET /api/report", h.report)
	})
}

type addCostRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	UserID      int64   `json:"userid"`
	Sum         float64 `json:"sum"`
	CreatedAt   string  `json:"createdAt"`
}

func (h *costsHandlers) add(w http.ResponseWriter, r *http.Request) {
	var req addCostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusInternalServerError, 0, err.Error())
		return
	}

	draft := core.CostDraft{
		UserID:      req.UserID,
		Category:    req.Category,
		Description: req.Description,
		Sum:         req.Sum,
	}
	if req.CreatedAt != "" {
		createdAt, err := parseDate(req.CreatedAt)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, req.UserID, "invalid createdAt")
			return
		}
		draft.CreatedAt = createdAt
	}

	item, err := h.svc.Add(r.Context(), draft)
	if err != nil {
		// Unknown user, invalid category, empty description and negative
		// sum all map to 500 with the envelope, as clients expect.
		writeError(w, r, http.StatusInternalServerError, req.UserID, err.Error())
		return
	}
	writeJSON(w, r, http.StatusCreated, item)
}

func (h *costsHandlers) report(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	idRaw := strings.TrimSpace(query.Get("id"))
	yearRaw := strings.TrimSpace(query.Get("year"))
	monthRaw := strings.TrimSpace(query.Get("month"))
	if idRaw == "" || yearRaw == "" || monthRaw == "" {
		writeError(w, r, http.StatusBadRequest, 0, "Missing parameters")
		return
	}

	id, errID := strconv.ParseInt(idRaw, 10, 64)
	year, errYear := strconv.Atoi(yearRaw)
	month, errMonth := strconv.Atoi(monthRaw)
	if errID != nil || errYear != nil || errMonth != nil {
		writeError(w, r, http.StatusBadRequest, 0, "Invalid parameters")
		return
	}

	rep, err := h.svc.MonthlyReport(r.Context(), id, year, month)
	switch {
	case errors.Is(err, core.ErrInvalidMonth) || errors.Is(err, core.ErrInvalidUserID):
		writeError(w, r, http.StatusBadRequest, id, err.Error())
	case errors.Is(err, core.ErrUnknownUser):
		writeError(w, r, http.StatusNotFound, id, "User not found")
	case err != nil:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Report failed",
			log.FieldUserID, id, log.FieldYear, year, log.FieldMonth, month, log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, id, err.Error())
	default:
		writeJSON(w, r, http.StatusOK, rep)
	}
}
