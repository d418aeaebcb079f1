package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"costmanager/internal/core"
)

// CostRepository stores cost items. Append-only: no update or delete is
// exposed. Timestamps are normalized to UTC RFC3339 so the strftime month
// filters below stay deterministic.
type CostRepository struct {
	db *sql.DB
}

func NewCostRepository(db *sql.DB) *CostRepository {
	return &CostRepository{db: db}
}

// Insert appends a validated cost item and returns it with its row id.
func (r *CostRepository) Insert(ctx context.Context, item core.CostItem) (core.CostItem, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO costs (userid, category, description, sum, created_at) VALUES (?, ?, ?, ?, ?)`,
		item.UserID, string(item.Category), item.Description, item.Sum,
		item.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return core.CostItem{}, fmt.Errorf("insert cost: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.CostItem{}, fmt.Errorf("last insert id: %w", err)
	}

	stored := item
	stored.ID = id
	stored.CreatedAt = item.CreatedAt.UTC()
	return stored, nil
}

// ListByMonth returns the user's items whose creation date falls in the
// given calendar month, in insertion order. The report builder imposes the
// by-day ordering itself.
func (r *CostRepository) ListByMonth(ctx context.Context, userID int64, year, month int) ([]core.CostItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, userid, category, description, sum, created_at
		   FROM costs
		  WHERE userid = ?
		    AND CAST(strftime('%Y', created_at) AS INTEGER) = ?
		    AND CAST(strftime('%m', created_at) AS INTEGER) = ?
		  ORDER BY id`,
		userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("query costs: %w", err)
	}
	defer rows.Close()

	return scanCostItems(rows)
}

// SumByUser returns the total of all the user's costs across every month.
func (r *CostRepository) SumByUser(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sum), 0) FROM costs WHERE userid = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum costs: %w", err)
	}
	return total, nil
}

func scanCostItems(rows *sql.Rows) ([]core.CostItem, error) {
	out := make([]core.CostItem, 0)
	for rows.Next() {
		var item core.CostItem
		var category, createdAt string
		if err := rows.Scan(&item.ID, &item.UserID, &category, &item.Description, &item.Sum, &createdAt); err != nil {
			return nil, fmt.Errorf("scan cost: %w", err)
		}
		item.Category = core.Category(category)
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		item.CreatedAt = t
		out = append(out, item)
	}
	return out, rows.Err()
}
