// Package costs orchestrates the cost write path and the monthly report
// engine of the Costs service.
package costs

import (
	"context"
	"fmt"
	"time"

	"costmanager/internal/core"
	"costmanager/internal/log"
	"costmanager/internal/report"
)

// Ports for the collaborators the service depends on.
type (
	// Store is the durable, append-only cost collection.
	Store interface {
		Insert(ctx context.Context, item core.CostItem) (core.CostItem, error)
		ListByMonth(ctx context.Context, userID int64, year, month int) ([]core.CostItem, error)
	}

	// UserDirectory answers "does this user exist". Backed by the Users
	// service's data; swapped for a fake in tests.
	UserDirectory interface {
		UserExists(ctx context.Context, id int64) (bool, error)
	}

	// ReportCache memoizes closed-month reports.
	ReportCache interface {
		Get(key core.MonthKey) (core.MonthlyReport, bool)
		Put(key core.MonthKey, rep core.MonthlyReport)
		Invalidate(key core.MonthKey)
	}
)

type Service struct {
	store  Store
	users  UserDirectory
	cache  ReportCache
	logger *log.Logger

	// build and now are swappable for tests.
	build func(core.MonthKey, []core.CostItem) core.MonthlyReport
	now   func() time.Time
}

func NewService(store Store, users UserDirectory, cache ReportCache, logger *log.Logger) *Service {
	return &Service{
		store:  store,
		users:  users,
		cache:  cache,
		logger: logger.WithComponent(log.ComponentCosts),
		build:  report.Build,
		now:    time.Now,
	}
}

// Add validates the draft, verifies the referenced user exists and appends
// the item. A successful append invalidates any memoized report for the
// item's month; a rejected draft touches neither store nor cache.
func (s *Service) Add(ctx context.Context, draft core.CostDraft) (core.CostItem, error) {
	item, err := draft.Item(s.now())
	if err != nil {
		return core.CostItem{}, err
	}

	// Existence check goes over the Users boundary; no lock is held here.
	ok, err := s.users.UserExists(ctx, item.UserID)
	if err != nil {
		return core.CostItem{}, fmt.Errorf("check user %d: %w", item.UserID, err)
	}
	if !ok {
		return core.CostItem{}, core.ErrUnknownUser
	}

	stored, err := s.store.Insert(ctx, item)
	if err != nil {
		return core.CostItem{}, fmt.Errorf("insert cost: %w", err)
	}

	key := core.MonthKey{
		UserID: stored.UserID,
		Year:   stored.CreatedAt.Year(),
		Month:  int(stored.CreatedAt.Month()),
	}
	s.cache.Invalidate(key)

	s.logger.InfoContext(ctx, "Cost item added",
		log.FieldUserID, stored.UserID,
		log.FieldCategory, string(stored.Category),
		log.FieldSum, stored.Sum,
		log.FieldYear, key.Year,
		log.FieldMonth, key.Month)

	return stored, nil
}

// MonthlyReport returns the report for (userID, year, month). Closed months
// are served from the cache when memoized and memoized on first build;
// current and future months are always built fresh.
func (s *Service) MonthlyReport(ctx context.Context, userID int64, year, month int) (core.MonthlyReport, error) {
	key := core.MonthKey{UserID: userID, Year: year, Month: month}
	if err := key.Validate(); err != nil {
		return core.MonthlyReport{}, err
	}

	ok, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return core.MonthlyReport{}, core.ErrUnknownUser
	}

	closed := key.Closed(s.now())
	if closed {
		if rep, hit := s.cache.Get(key); hit {
			s.logger.DebugContext(ctx, "Report served from cache",
				log.FieldUserID, userID, log.FieldYear, year, log.FieldMonth, month)
			return rep, nil
		}
	}

	items, err := s.store.ListByMonth(ctx, userID, year, month)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("list costs: %w", err)
	}

	rep := s.build(key, items)
	if closed {
		s.cache.Put(key, rep)
		s.logger.InfoContext(ctx, "Computed report memoized",
			log.FieldUserID, userID, log.FieldYear, year, log.FieldMonth, month)
	}
	return rep, nil
}
