package usecase

import (
	"context"

	domainErrors "github.com/mfcarvalho/painel-pedidos/internal/domain/errors"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/repository"
)

// DashboardUseCase encapsulates the order dashboard's data access. The two
// category sets come from configuration: the filter bar shows a wider slice
// of the catalog than the update selector.
type DashboardUseCase struct {
	orders           repository.OrderRepository
	statuses         repository.StatusRepository
	users            repository.UserRepository
	filterCategories []int
	selectCategories []int
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(
	orders repository.OrderRepository,
	statuses repository.StatusRepository,
	users repository.UserRepository,
	filterCategories, selectCategories []int,
) *DashboardUseCase {
	return &DashboardUseCase{
		orders:           orders,
		statuses:         statuses,
		users:            users,
		filterCategories: filterCategories,
		selectCategories: selectCategories,
	}
}

// IsAdmin runs the server-side authorization predicate for the user.
func (u *DashboardUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.users.IsAdmin(ctx, userID)
}

// FetchOrders returns all orders joined with status descriptions and line
// items, newest first.
func (u *DashboardUseCase) FetchOrders(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// FilterOptions returns the catalog slice shown in the filter bar.
func (u *DashboardUseCase) FilterOptions(ctx context.Context) ([]model.StatusEntry, error) {
	return u.statuses.ListByCategories(ctx, u.filterCategories)
}

// SelectorOptions returns the catalog slice offered by the update selector.
func (u *DashboardUseCase) SelectorOptions(ctx context.Context) ([]model.StatusEntry, error) {
	return u.statuses.ListByCategories(ctx, u.selectCategories)
}

// UpdateStatus invokes the remote status-update procedure. The target status
// must belong to the selector categories; the repository enforces catalog
// membership on its side as well.
func (u *DashboardUseCase) UpdateStatus(ctx context.Context, orderID int64, statusID int) error {
	options, err := u.SelectorOptions(ctx)
	if err != nil {
		return err
	}

	valid := false
	for _, entry := range options {
		if entry.StatusID == statusID {
			valid = true
			break
		}
	}
	if !valid {
		return domainErrors.ErrInvalidStatus
	}

	return u.orders.UpdateStatus(ctx, orderID, statusID)
}
