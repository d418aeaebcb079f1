package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"costmanager/internal/log"
)

// errorEnvelope is the failure body shared by all services. The id echoes
// the identifier relevant to the failed lookup or write when available.
type errorEnvelope struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response", log.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, id int64, message string) {
	writeJSON(w, r, status, errorEnvelope{ID: id, Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// parseDate accepts both full RFC3339 timestamps and bare YYYY-MM-DD dates,
// the two shapes existing clients send.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
