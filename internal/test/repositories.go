package test

import (
	"context"

	domainErrors "github.com/mfcarvalho/painel-pedidos/internal/domain/errors"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users  map[string]*model.User
	ByID   map[int64]*model.User
	Admins map[int64]bool
	Next   int64
	Err    error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:  make(map[string]*model.User),
		ByID:   make(map[int64]*model.User),
		Admins: make(map[int64]bool),
		Next:   1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// IsAdmin reports membership in the stub's admin set.
func (s *UserRepositoryStub) IsAdmin(ctx context.Context, id int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	return s.Admins[id], nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	ListFn         func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, int) error

	Orders      []model.Order
	UpdateCalls []OrderUpdateCall
}

// OrderUpdateCall records one UpdateStatus invocation.
type OrderUpdateCall struct {
	OrderID  int64
	StatusID int
}

// List returns orders from the override or the configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

// UpdateStatus tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, statusID int) error {
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, StatusID: statusID})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, statusID)
	}
	return nil
}

// StatusRepositoryStub serves a fixed status catalog.
type StatusRepositoryStub struct {
	Entries []model.StatusEntry
	Err     error
}

// ListByCategories returns the catalog entries belonging to the requested
// categories.
func (s *StatusRepositoryStub) ListByCategories(ctx context.Context, categories []int) ([]model.StatusEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.StatusEntry
	for _, entry := range s.Entries {
		for _, cat := range categories {
			if entry.Category == cat {
				result = append(result, entry)
				break
			}
		}
	}
	return result, nil
}

// InsertListenerStub blocks until the context is cancelled.
type InsertListenerStub struct{}

// Listen waits for cancellation without delivering notifications.
func (InsertListenerStub) Listen(ctx context.Context, _ func(int64)) error {
	<-ctx.Done()
	return ctx.Err()
}
