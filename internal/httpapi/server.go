// Package httpapi exposes the four services' HTTP surfaces. Each service
// gets its own Server; routing, middleware and the JSON error envelope are
// shared.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"costmanager/internal/log"
	"costmanager/internal/reqlog"
)

type Server struct {
	http.Server
	shutdownOnce sync.Once
}

// Shutdown gracefully stops the server; safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// newServer wires the shared middleware chain around a service's routes.
// message is the log line recorded per request ("Users Service Request", ...).
func newServer(addr, service, message string, logger *log.Logger, recorder reqlog.Recorder, register func(mux *http.ServeMux)) *Server {
	mux := http.NewServeMux()
	register(mux)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	handler := trailingSlash(requestLog(service, message, logger, recorder)(securityHeaders(mux)))

	return &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// trailingSlash redirects /api/add/ to /api/add with a 307 so POST bodies
// survive the redirect.
func trailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && len(r.URL.Path) > 1 {
			target := strings.TrimSuffix(r.URL.Path, "/")
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLog logs every request and emits one reqlog entry per handled
// request. Recording failures never reach the client.
func requestLog(service, message string, logger *log.Logger, recorder reqlog.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With(
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			ctx := log.IntoContext(r.Context(), reqLogger)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r.WithContext(ctx))

			duration := time.Since(start)
			reqLogger.InfoContext(ctx, "Request handled",
				log.FieldStatusCode, rw.statusCode,
				log.FieldDuration, duration.Milliseconds())

			entry := reqlog.Entry{
				Time:           start,
				Level:          "info",
				Service:        service,
				Method:         r.Method,
				URL:            r.URL.RequestURI(),
				Status:         rw.statusCode,
				DurationMillis: duration.Milliseconds(),
				Message:        message,
			}
			if err := recorder.Record(ctx, entry); err != nil {
				reqLogger.WarnContext(ctx, "Failed to record request log", log.FieldError, err)
			}
		})
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// responseWriter captures the status code for logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
