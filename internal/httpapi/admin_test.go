package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"costmanager/internal/config"
	"costmanager/internal/reqlog"
)

func TestAdminAbout(t *testing.T) {
	roster := []config.TeamMember{
		{FirstName: "Ofir", LastName: "Nesher"},
		{FirstName: "Asaf", LastName: "Arusi"},
	}
	handler := NewAdminServer(":0", roster, testLogger(), reqlog.Discard{}).Handler

	req := httptest.NewRequest(http.MethodGet, "/api/about", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got []config.TeamMember
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("roster has %d members, want 2", len(got))
	}
	if got[0] != roster[0] || got[1] != roster[1] {
		t.Errorf("roster = %+v, want %+v", got, roster)
	}
}

func TestAdminUnknownRoute(t *testing.T) {
	handler := NewAdminServer(":0", []config.TeamMember{{FirstName: "Ofir", LastName: "Nesher"}}, testLogger(), reqlog.Discard{}).Handler

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
