package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"costmanager/internal/config"
	"costmanager/internal/reqlog"
)

func newMiddlewareHandler(recorder reqlog.Recorder) http.Handler {
	roster := []config.TeamMember{{FirstName: "Ofir", LastName: "Nesher"}}
	return NewAdminServer(":0", roster, testLogger(), recorder).Handler
}

func TestTrailingSlashRedirect(t *testing.T) {
	handler := newMiddlewareHandler(reqlog.Discard{})

	tests := []struct {
		name    string
		method  string
		path    string
		wantLoc string
	}{
		{name: "get", method: http.MethodGet, path: "/api/about/", wantLoc: "/api/about"},
		{name: "post keeps method", method: http.MethodPost, path: "/api/add/", wantLoc: "/api/add"},
		{name: "query survives", method: http.MethodGet, path: "/api/report/?id=1&year=2020&month=1", wantLoc: "/api/report?id=1&year=2020&month=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("status = %d, want 307", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
				t.Errorf("Location = %q, want %q", loc, tt.wantLoc)
			}
		})
	}
}

func TestRootPathNotRedirected(t *testing.T) {
	handler := newMiddlewareHandler(reqlog.Discard{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusTemporaryRedirect {
		t.Error("bare / must not redirect to empty path")
	}
}

func TestRequestLogRecordsEntry(t *testing.T) {
	recorder := &captureRecorder{}
	handler := newMiddlewareHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/api/about", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	entries := recorder.all()
	if len(entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Service != "admin" || e.Method != http.MethodGet || e.URL != "/api/about" {
		t.Errorf("entry = %+v", e)
	}
	if e.Status != http.StatusOK {
		t.Errorf("entry status = %d, want 200", e.Status)
	}
	if e.Message != "Admin Request" {
		t.Errorf("entry message = %q, want Admin Request", e.Message)
	}
	if e.Time.IsZero() {
		t.Error("entry time should be set")
	}
}

func TestRequestLogCapturesErrorStatus(t *testing.T) {
	recorder := &captureRecorder{}
	handler := newMiddlewareHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	entries := recorder.all()
	if len(entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(entries))
	}
	if entries[0].Status != http.StatusNotFound {
		t.Errorf("entry status = %d, want 404", entries[0].Status)
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := newMiddlewareHandler(reqlog.Discard{})

	req := httptest.NewRequest(http.MethodGet, "/api/about", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	handler := newMiddlewareHandler(reqlog.Discard{})

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
