package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"costmanager/internal/reqlog"
)

// LogRepository stores request-log entries. It implements reqlog.Recorder,
// so services without an AMQP broker configured write entries directly.
type LogRepository struct {
	db *sql.DB
}

func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Record implements reqlog.Recorder.
func (r *LogRepository) Record(ctx context.Context, e reqlog.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO logs (time, level, service, method, url, status, duration_ms, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(time.RFC3339Nano), e.Level, e.Service,
		e.Method, e.URL, e.Status, e.DurationMillis, e.Message)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// All returns every entry, oldest first.
func (r *LogRepository) All(ctx context.Context) ([]reqlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT time, level, service, method, url, status, duration_ms, message
		   FROM logs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	out := make([]reqlog.Entry, 0)
	for rows.Next() {
		var e reqlog.Entry
		var ts string
		if err := rows.Scan(&ts, &e.Level, &e.Service, &e.Method, &e.URL, &e.Status, &e.DurationMillis, &e.Message); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse log time: %w", err)
		}
		e.Time = t
		out = append(out, e)
	}
	return out, rows.Err()
}
