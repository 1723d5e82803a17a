package handlers

import (
	"context"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	Session(ctx context.Context, userID int64) (*model.User, error)
}

// DashboardFacade encapsulates order dashboard operations exposed via HTTP.
type DashboardFacade interface {
	Orders(ctx context.Context, sel model.Selection) (*model.DashboardView, error)
	ChangeStatus(ctx context.Context, orderID int64, statusID int) error
	Refresh(ctx context.Context) error
	SelectorOptions(ctx context.Context) ([]model.StatusEntry, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// PanelFacade aggregates the full set of operations used across handlers.
type PanelFacade interface {
	AuthFacade
	DashboardFacade
}
