// Package reqlog defines the request-log entry every service emits once per
// handled HTTP request, and the Recorder port the Logs service consumes
// them through.
package reqlog

import (
	"context"
	"time"
)

// Entry is one observed HTTP request. The Logs service serves these back
// verbatim via GET /api/logs.
type Entry struct {
	Time           time.Time `json:"time"`
	Level          string    `json:"level"`
	Service        string    `json:"service"`
	Method         string    `json:"method"`
	URL            string    `json:"url"`
	Status         int       `json:"status"`
	DurationMillis int64     `json:"duration_ms"`
	Message        string    `json:"message"`
}

// Recorder accepts entries. Recording is fire-and-forget from the emitting
// service's perspective: failures are logged, never surfaced to the client.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Discard is a Recorder that drops every entry. Used in tests and as a
// fallback when no log sink is configured.
type Discard struct{}

func (Discard) Record(context.Context, Entry) error { return nil }
