package app

import (
	"context"
	"log/slog"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/store"
	"github.com/mfcarvalho/painel-pedidos/internal/usecase"
)

// HighlightSource reports which orders still carry a live "new order" marker.
type HighlightSource interface {
	ActiveIDs(ctx context.Context, orderIDs []int64) (map[int64]bool, error)
}

// Fetcher runs one full fetch cycle into the order store.
type Fetcher interface {
	Refresh(ctx context.Context) error
}

// PanelFacade aggregates the application services behind the HTTP surface.
type PanelFacade struct {
	auth       *usecase.AuthUseCase
	dashboard  *usecase.DashboardUseCase
	orders     *store.OrderStore
	highlights HighlightSource
	fetcher    Fetcher
	logger     *slog.Logger
}

// NewPanelFacade constructs PanelFacade.
func NewPanelFacade(
	auth *usecase.AuthUseCase,
	dashboard *usecase.DashboardUseCase,
	orders *store.OrderStore,
	highlights HighlightSource,
	fetcher Fetcher,
	logger *slog.Logger,
) *PanelFacade {
	return &PanelFacade{
		auth:       auth,
		dashboard:  dashboard,
		orders:     orders,
		highlights: highlights,
		fetcher:    fetcher,
		logger:     logger,
	}
}

func (f *PanelFacade) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, login, password)
}

func (f *PanelFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *PanelFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PanelFacade) Session(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *PanelFacade) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return f.dashboard.IsAdmin(ctx, userID)
}

// Orders serves one dashboard render from the held snapshot. The first call
// after startup may find the store empty and performs a synchronous fetch.
// Aggregates are computed over the full snapshot; the selection only narrows
// the returned list.
func (f *PanelFacade) Orders(ctx context.Context, sel model.Selection) (*model.DashboardView, error) {
	orders, statuses, loaded := f.orders.Snapshot()
	if !loaded {
		if err := f.fetcher.Refresh(ctx); err != nil {
			return nil, err
		}
		orders, statuses, _ = f.orders.Snapshot()
	}

	stats := usecase.Summarize(orders)
	derived := usecase.ApplySelection(orders, sel)

	ids := make([]int64, 0, len(derived))
	for _, o := range derived {
		ids = append(ids, o.ID)
	}
	highlights, err := f.highlights.ActiveIDs(ctx, ids)
	if err != nil {
		// Markers are decorative; serve the list without them.
		f.logger.Warn("highlight lookup failed", slog.String("error", err.Error()))
		highlights = map[int64]bool{}
	}

	return &model.DashboardView{
		Orders:     derived,
		Stats:      stats,
		Filters:    statuses,
		Highlights: highlights,
	}, nil
}

// ChangeStatus runs the remote update and, once confirmed, patches the held
// snapshot so the next render reflects it without waiting for a refetch.
func (f *PanelFacade) ChangeStatus(ctx context.Context, orderID int64, statusID int) error {
	if err := f.dashboard.UpdateStatus(ctx, orderID, statusID); err != nil {
		return err
	}
	f.orders.SetStatus(orderID, statusID)
	return nil
}

func (f *PanelFacade) Refresh(ctx context.Context) error {
	return f.fetcher.Refresh(ctx)
}

func (f *PanelFacade) SelectorOptions(ctx context.Context) ([]model.StatusEntry, error) {
	return f.dashboard.SelectorOptions(ctx)
}
