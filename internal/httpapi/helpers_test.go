package httpapi

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"costmanager/internal/core"
	"costmanager/internal/costs"
	"costmanager/internal/log"
	"costmanager/internal/report"
	"costmanager/internal/reqlog"
	"costmanager/internal/users"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

// memUserStore backs both the Users service and the Costs service's
// existence checks, mirroring the shared database in production.
type memUserStore struct {
	users map[int64]core.User
}

func newMemUserStore(us ...core.User) *memUserStore {
	s := &memUserStore{users: map[int64]core.User{}}
	for _, u := range us {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) Insert(_ context.Context, u core.User) error {
	if _, ok := s.users[u.ID]; ok {
		return core.ErrDuplicateUser
	}
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) ByID(_ context.Context, id int64) (core.User, error) {
	u, ok := s.users[id]
	if !ok {
		return core.User{}, core.ErrUnknownUser
	}
	return u, nil
}

func (s *memUserStore) All(_ context.Context) ([]core.User, error) {
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memUserStore) UserExists(_ context.Context, id int64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

// memCostStore serves the Costs service and the Users service's totals.
type memCostStore struct {
	items  []core.CostItem
	nextID int64
}

func (s *memCostStore) Insert(_ context.Context, item core.CostItem) (core.CostItem, error) {
	s.nextID++
	item.ID = s.nextID
	s.items = append(s.items, item)
	return item, nil
}

func (s *memCostStore) ListByMonth(_ context.Context, userID int64, year, month int) ([]core.CostItem, error) {
	var out []core.CostItem
	for _, item := range s.items {
		if item.UserID == userID && item.CreatedAt.Year() == year && int(item.CreatedAt.Month()) == month {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memCostStore) SumByUser(_ context.Context, userID int64) (float64, error) {
	var total float64
	for _, item := range s.items {
		if item.UserID == userID {
			total += item.Sum
		}
	}
	return total, nil
}

// captureRecorder collects the request-log entries the middleware emits.
type captureRecorder struct {
	mu      sync.Mutex
	entries []reqlog.Entry
}

func (c *captureRecorder) Record(_ context.Context, e reqlog.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
	return nil
}

func (c *captureRecorder) all() []reqlog.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]reqlog.Entry(nil), c.entries...)
}

func seedUser() core.User {
	return core.User{
		ID:        123123,
		FirstName: "mosh",
		LastName:  "israeli",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// testEnv wires the two data-bearing services over shared in-memory stores.
type testEnv struct {
	userStore *memUserStore
	costStore *memCostStore
	costsSvc  *costs.Service
	usersSvc  *users.Service
}

func newTestEnv(us ...core.User) *testEnv {
	logger := testLogger()
	userStore := newMemUserStore(us...)
	costStore := &memCostStore{}
	return &testEnv{
		userStore: userStore,
		costStore: costStore,
		costsSvc:  costs.NewService(costStore, userStore, report.NewCache(), logger),
		usersSvc:  users.NewService(userStore, costStore, logger),
	}
}
