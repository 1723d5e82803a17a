package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
	"github.com/mfcarvalho/painel-pedidos/internal/store"
)

type providerStub struct {
	ordersFn   func(context.Context) ([]model.Order, error)
	statusesFn func(context.Context) ([]model.StatusEntry, error)
}

func (p providerStub) FetchOrders(ctx context.Context) ([]model.Order, error) {
	if p.ordersFn != nil {
		return p.ordersFn(ctx)
	}
	return []model.Order{{ID: 1, StatusID: 200}}, nil
}

func (p providerStub) FilterOptions(ctx context.Context) ([]model.StatusEntry, error) {
	if p.statusesFn != nil {
		return p.statusesFn(ctx)
	}
	return []model.StatusEntry{{StatusID: 200, Description: "Pendente", Category: 1}}, nil
}

type broadcasterStub struct {
	mu     sync.Mutex
	events []any
}

func (b *broadcasterStub) Broadcast(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, v)
}

func (b *broadcasterStub) all() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]any(nil), b.events...)
}

type highlighterStub struct {
	mu  sync.Mutex
	ids []int64
	err error
}

func (h *highlighterStub) MarkNew(_ context.Context, orderID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids = append(h.ids, orderID)
	return h.err
}

type listenerStub struct {
	notify chan int64
}

func (l listenerStub) Listen(ctx context.Context, handler func(int64)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case id := <-l.notify:
			handler(id)
		}
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshAppliesSnapshot(t *testing.T) {
	orders := store.New()
	r := NewRefresher(providerStub{}, listenerStub{}, orders, &broadcasterStub{}, &highlighterStub{}, testLogger())

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, statuses, loaded := orders.Snapshot()
	if !loaded {
		t.Fatal("expected snapshot to be loaded")
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected orders: %+v", got)
	}
	if len(statuses) != 1 || statuses[0].StatusID != 200 {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestRefreshPropagatesFetchError(t *testing.T) {
	wantErr := errors.New("boom")
	provider := providerStub{ordersFn: func(context.Context) ([]model.Order, error) {
		return nil, wantErr
	}}
	orders := store.New()
	r := NewRefresher(provider, listenerStub{}, orders, &broadcasterStub{}, &highlighterStub{}, testLogger())

	if err := r.Refresh(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if _, _, loaded := orders.Snapshot(); loaded {
		t.Fatal("failed fetch must not populate the store")
	}
}

func TestInsertNotificationTriggersRefreshAndBroadcast(t *testing.T) {
	notify := make(chan int64)
	broadcaster := &broadcasterStub{}
	highlighter := &highlighterStub{}
	orders := store.New()

	fetched := make(chan struct{}, 4)
	provider := providerStub{ordersFn: func(context.Context) ([]model.Order, error) {
		fetched <- struct{}{}
		return []model.Order{{ID: 7, StatusID: 200}}, nil
	}}

	r := NewRefresher(provider, listenerStub{notify: notify}, orders, broadcaster, highlighter, testLogger())
	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, fetched) // initial fetch

	notify <- 7
	waitFor(t, fetched)

	deadline := time.After(2 * time.Second)
	for {
		events := broadcaster.all()
		if len(events) > 0 {
			ev, ok := events[0].(InsertEvent)
			if !ok || ev.Type != "pedido_inserido" || ev.OrderID != 7 {
				t.Fatalf("unexpected event: %+v", events[0])
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for broadcast")
		case <-time.After(10 * time.Millisecond):
		}
	}

	highlighter.mu.Lock()
	marked := append([]int64(nil), highlighter.ids...)
	highlighter.mu.Unlock()
	if len(marked) != 1 || marked[0] != 7 {
		t.Fatalf("unexpected highlight markers: %v", marked)
	}
}

func TestHighlightFailureDoesNotBlockRefresh(t *testing.T) {
	notify := make(chan int64)
	highlighter := &highlighterStub{err: errors.New("redis down")}
	orders := store.New()

	fetched := make(chan struct{}, 4)
	provider := providerStub{ordersFn: func(context.Context) ([]model.Order, error) {
		fetched <- struct{}{}
		return []model.Order{{ID: 9}}, nil
	}}

	r := NewRefresher(provider, listenerStub{notify: notify}, orders, &broadcasterStub{}, highlighter, testLogger())
	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, fetched)
	notify <- 9
	waitFor(t, fetched)

	if _, _, loaded := orders.Snapshot(); !loaded {
		t.Fatal("expected refresh despite highlight failure")
	}
}

func TestStopWaitsForListener(t *testing.T) {
	r := NewRefresher(providerStub{}, listenerStub{notify: make(chan int64)}, store.New(), &broadcasterStub{}, &highlighterStub{}, testLogger())
	r.Start(context.Background())

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
	}
}
