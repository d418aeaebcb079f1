package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"costmanager/internal/core"
)

// UserRepository stores users. It also backs the Costs service's existence
// checks (costs.UserDirectory).
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Insert stores a new user. An already-taken id is reported as
// core.ErrDuplicateUser.
func (r *UserRepository) Insert(ctx context.Context, u core.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, u.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return core.ErrDuplicateUser
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, birthday) VALUES (?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Birthday.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return tx.Commit()
}

// ByID returns the user or core.ErrUnknownUser.
func (r *UserRepository) ByID(ctx context.Context, id int64) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, birthday FROM users WHERE id = ?`, id)

	var u core.User
	var birthday string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &birthday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUnknownUser
		}
		return core.User{}, fmt.Errorf("query user: %w", err)
	}

	t, err := time.Parse(time.RFC3339, birthday)
	if err != nil {
		return core.User{}, fmt.Errorf("parse birthday: %w", err)
	}
	u.Birthday = t
	return u, nil
}

// All returns every user, oldest id first.
func (r *UserRepository) All(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, birthday FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := make([]core.User, 0)
	for rows.Next() {
		var u core.User
		var birthday string
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &birthday); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		t, err := time.Parse(time.RFC3339, birthday)
		if err != nil {
			return nil, fmt.Errorf("parse birthday: %w", err)
		}
		u.Birthday = t
		out = append(out, u)
	}
	return out, rows.Err()
}

// UserExists implements costs.UserDirectory.
func (r *UserRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}
