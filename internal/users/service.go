// Package users implements the Users service operations: user CRUD and the
// per-user cost total.
package users

import (
	"context"
	"fmt"

	"costmanager/internal/core"
	"costmanager/internal/log"
)

type (
	// Store is the durable user collection.
	Store interface {
		Insert(ctx context.Context, u core.User) error
		ByID(ctx context.Context, id int64) (core.User, error)
		All(ctx context.Context) ([]core.User, error)
	}

	// CostTotals sums a user's cost items across all months. Totals are
	// never cached: they must reflect the latest writes on every call.
	CostTotals interface {
		SumByUser(ctx context.Context, userID int64) (float64, error)
	}
)

// UserWithTotal is the detail view served by GET /api/users/{id}.
type UserWithTotal struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Total     float64 `json:"total"`
}

type Service struct {
	store  Store
	totals CostTotals
	logger *log.Logger
}

func NewService(store Store, totals CostTotals, logger *log.Logger) *Service {
	return &Service{
		store:  store,
		totals: totals,
		logger: logger.WithComponent(log.ComponentUsers),
	}
}

// Add validates and stores a new user. The store reports an existing id as
// core.ErrDuplicateUser.
func (s *Service) Add(ctx context.Context, u core.User) (core.User, error) {
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return core.User{}, err
	}
	s.logger.InfoContext(ctx, "User created", log.FieldUserID, u.ID)
	return u, nil
}

// Get returns the user with the fresh sum of all their costs.
func (s *Service) Get(ctx context.Context, id int64) (UserWithTotal, error) {
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		return UserWithTotal{}, err
	}
	total, err := s.totals.SumByUser(ctx, id)
	if err != nil {
		return UserWithTotal{}, fmt.Errorf("sum costs for user %d: %w", id, err)
	}
	return UserWithTotal{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Total:     total,
	}, nil
}

// List returns every user.
func (s *Service) List(ctx context.Context) ([]core.User, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return all, nil
}
