package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/repository"
	"github.com/mfcarvalho/painel-pedidos/internal/store"
)

// DashboardProvider exposes the subset of application functionality required
// by the refresher.
type DashboardProvider interface {
	FetchOrders(ctx context.Context) ([]model.Order, error)
	FilterOptions(ctx context.Context) ([]model.StatusEntry, error)
}

// Broadcaster pushes events to connected dashboard clients.
type Broadcaster interface {
	Broadcast(v any)
}

// Highlighter records transient "new order" markers.
type Highlighter interface {
	MarkNew(ctx context.Context, orderID int64) error
}

// InsertEvent is pushed to clients when an order lands.
type InsertEvent struct {
	Type    string `json:"type"`
	OrderID int64  `json:"pedido_id"`
}

// Refresher subscribes to order-insert notifications and refetches the full
// order list on every one. Refresh cycles may overlap; the store's sequence
// gate keeps a slow older fetch from clobbering a newer result.
type Refresher struct {
	provider    DashboardProvider
	listener    repository.InsertListener
	orders      *store.OrderStore
	broadcaster Broadcaster
	highlighter Highlighter
	logger      *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRefresher constructs the refresh worker.
func NewRefresher(
	provider DashboardProvider,
	listener repository.InsertListener,
	orders *store.OrderStore,
	broadcaster Broadcaster,
	highlighter Highlighter,
	logger *slog.Logger,
) *Refresher {
	return &Refresher{
		provider:    provider,
		listener:    listener,
		orders:      orders,
		broadcaster: broadcaster,
		highlighter: highlighter,
		logger:      logger,
	}
}

// Start launches the notification loop and performs the initial fetch.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.Refresh(runCtx); err != nil {
			r.logger.Error("initial order fetch failed", slog.String("error", err.Error()))
		}
	}()

	r.wg.Add(1)
	go r.listen(runCtx)
}

// Stop cancels the notification loop and waits for in-flight refreshes.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Refresher) listen(ctx context.Context) {
	defer r.wg.Done()

	if err := r.listener.Listen(ctx, func(orderID int64) {
		r.handleInsert(ctx, orderID)
	}); err != nil && ctx.Err() == nil {
		r.logger.Error("insert notification stream failed", slog.String("error", err.Error()))
	}
}

func (r *Refresher) handleInsert(ctx context.Context, orderID int64) {
	if err := r.highlighter.MarkNew(ctx, orderID); err != nil {
		r.logger.Warn("mark new order failed", slog.Int64("order", orderID), slog.String("error", err.Error()))
	}

	r.broadcaster.Broadcast(InsertEvent{Type: "pedido_inserido", OrderID: orderID})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.Refresh(ctx); err != nil {
			r.logger.Error("order refresh failed", slog.Int64("order", orderID), slog.String("error", err.Error()))
		}
	}()
}

// Refresh performs one full fetch cycle. The sequence number is taken before
// the fetch so the store can discard results that finished out of order.
func (r *Refresher) Refresh(ctx context.Context) error {
	seq := r.orders.NextSeq()

	fetched, err := r.provider.FetchOrders(ctx)
	if err != nil {
		return err
	}
	statuses, err := r.provider.FilterOptions(ctx)
	if err != nil {
		return err
	}

	if !r.orders.Apply(seq, fetched, statuses) {
		r.logger.Debug("stale fetch discarded", slog.Uint64("seq", seq))
	}
	return nil
}
