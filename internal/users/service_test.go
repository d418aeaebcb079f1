package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"costmanager/internal/core"
	"costmanager/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

type fakeStore struct {
	users map[int64]core.User
}

func newFakeStore(users ...core.User) *fakeStore {
	s := &fakeStore{users: map[int64]core.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeStore) Insert(_ context.Context, u core.User) error {
	if _, ok := s.users[u.ID]; ok {
		return core.ErrDuplicateUser
	}
	s.users[u.ID] = u
	return nil
}

func (s *fakeStore) ByID(_ context.Context, id int64) (core.User, error) {
	u, ok := s.users[id]
	if !ok {
		return core.User{}, core.ErrUnknownUser
	}
	return u, nil
}

func (s *fakeStore) All(_ context.Context) ([]core.User, error) {
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeTotals struct {
	sums map[int64]float64
	err  error
}

func (f *fakeTotals) SumByUser(_ context.Context, userID int64) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.sums[userID], nil
}

func mosh() core.User {
	return core.User{
		ID:        123123,
		FirstName: "mosh",
		LastName:  "israeli",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddStoresValidUser(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTotals{}, testLogger())

	u, err := svc.Add(context.Background(), mosh())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if u.ID != 123123 {
		t.Errorf("returned id = %d, want 123123", u.ID)
	}
	if _, ok := store.users[123123]; !ok {
		t.Error("user not persisted")
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	store := newFakeStore(mosh())
	svc := NewService(store, &fakeTotals{}, testLogger())

	_, err := svc.Add(context.Background(), mosh())
	if !errors.Is(err, core.ErrDuplicateUser) {
		t.Fatalf("Add error = %v, want ErrDuplicateUser", err)
	}
}

func TestAddRejectsInvalidUser(t *testing.T) {
	tests := []struct {
		name string
		user core.User
	}{
		{name: "zero id", user: core.User{FirstName: "a", LastName: "b", Birthday: time.Now()}},
		{name: "missing first name", user: core.User{ID: 1, LastName: "b", Birthday: time.Now()}},
		{name: "missing last name", user: core.User{ID: 1, FirstName: "a", Birthday: time.Now()}},
		{name: "missing birthday", user: core.User{ID: 1, FirstName: "a", LastName: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := NewService(store, &fakeTotals{}, testLogger())

			if _, err := svc.Add(context.Background(), tt.user); err == nil {
				t.Fatal("Add accepted an invalid user")
			}
			if len(store.users) != 0 {
				t.Error("invalid user must not reach the store")
			}
		})
	}
}

func TestGetComputesFreshTotal(t *testing.T) {
	totals := &fakeTotals{sums: map[int64]float64{123123: 37.5}}
	svc := NewService(newFakeStore(mosh()), totals, testLogger())

	got, err := svc.Get(context.Background(), 123123)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FirstName != "mosh" || got.LastName != "israeli" {
		t.Errorf("names = %q %q, want mosh israeli", got.FirstName, got.LastName)
	}
	if got.Total != 37.5 {
		t.Errorf("Total = %v, want 37.5", got.Total)
	}

	// A later write changes the total on the very next read.
	totals.sums[123123] = 50
	got, err = svc.Get(context.Background(), 123123)
	if err != nil {
		t.Fatalf("Get after write: %v", err)
	}
	if got.Total != 50 {
		t.Errorf("Total = %v, want 50 (totals are never cached)", got.Total)
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeTotals{}, testLogger())

	_, err := svc.Get(context.Background(), 999888777)
	if !errors.Is(err, core.ErrUnknownUser) {
		t.Fatalf("Get error = %v, want ErrUnknownUser", err)
	}
}

func TestGetTotalsFailurePropagates(t *testing.T) {
	sumErr := errors.New("totals down")
	svc := NewService(newFakeStore(mosh()), &fakeTotals{err: sumErr}, testLogger())

	_, err := svc.Get(context.Background(), 123123)
	if !errors.Is(err, sumErr) {
		t.Errorf("Get error = %v, want wrapped %v", err, sumErr)
	}
}

func TestList(t *testing.T) {
	other := core.User{ID: 7, FirstName: "dana", LastName: "levi", Birthday: time.Now()}
	svc := NewService(newFakeStore(mosh(), other), &fakeTotals{}, testLogger())

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List returned %d users, want 2", len(all))
	}
}
