package test

import (
	"context"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// PanelFacadeStub provides controllable behaviour for HTTP handler tests.
type PanelFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn   func(string) (int64, error)
	SessionFn      func(context.Context, int64) (*model.User, error)
	OrdersFn       func(context.Context, model.Selection) (*model.DashboardView, error)
	ChangeStatusFn func(context.Context, int64, int) error
	RefreshFn      func(context.Context) error
	SelectorFn     func(context.Context) ([]model.StatusEntry, error)
	IsAdminFn      func(context.Context, int64) (bool, error)
}

// Register delegates to the override or returns a default account.
func (s PanelFacadeStub) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login}, "token", nil
}

// Authenticate delegates to the override or returns a default session.
func (s PanelFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Admin: true}, "token", nil
}

// ParseToken delegates to the override or accepts any token as user 1.
func (s PanelFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

// Session delegates to the override or returns a default account.
func (s PanelFacadeStub) Session(ctx context.Context, userID int64) (*model.User, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, userID)
	}
	return &model.User{ID: userID, Login: "user", Admin: true}, nil
}

// Orders delegates to the override or returns an empty view.
func (s PanelFacadeStub) Orders(ctx context.Context, sel model.Selection) (*model.DashboardView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, sel)
	}
	return &model.DashboardView{
		Stats:      model.Stats{ByStatus: map[int]int{}},
		Highlights: map[int64]bool{},
	}, nil
}

// ChangeStatus delegates to the override or succeeds.
func (s PanelFacadeStub) ChangeStatus(ctx context.Context, orderID int64, statusID int) error {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, orderID, statusID)
	}
	return nil
}

// Refresh delegates to the override or succeeds.
func (s PanelFacadeStub) Refresh(ctx context.Context) error {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx)
	}
	return nil
}

// SelectorOptions delegates to the override or returns one entry.
func (s PanelFacadeStub) SelectorOptions(ctx context.Context) ([]model.StatusEntry, error) {
	if s.SelectorFn != nil {
		return s.SelectorFn(ctx)
	}
	return []model.StatusEntry{{StatusID: 200, Description: "Pendente", Category: 1}}, nil
}

// IsAdmin delegates to the override or grants access.
func (s PanelFacadeStub) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if s.IsAdminFn != nil {
		return s.IsAdminFn(ctx, userID)
	}
	return true, nil
}
