package store

import (
	"sync"
	"sync/atomic"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// OrderStore is the process-local holding area for fetched orders and the
// status catalog. It is replaced wholesale on every refresh; a monotonically
// increasing fetch sequence keeps a slow response from overwriting a newer
// one.
type OrderStore struct {
	seq atomic.Uint64

	mu       sync.RWMutex
	applied  uint64
	orders   []model.Order
	statuses []model.StatusEntry
	loaded   bool
}

// New creates an empty store.
func New() *OrderStore {
	return &OrderStore{}
}

// NextSeq hands out the sequence number for a fetch cycle. Callers must take
// it before issuing the fetch so overlap resolution reflects start order.
func (s *OrderStore) NextSeq() uint64 {
	return s.seq.Add(1)
}

// Apply replaces the snapshot if seq is newer than the last applied fetch.
// Returns false when the result was stale and discarded.
func (s *OrderStore) Apply(seq uint64, orders []model.Order, statuses []model.StatusEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && seq <= s.applied {
		return false
	}

	s.applied = seq
	s.orders = orders
	s.statuses = statuses
	s.loaded = true
	return true
}

// Snapshot returns copies of the current orders and catalog. The boolean
// reports whether any fetch has been applied yet.
func (s *OrderStore) Snapshot() ([]model.Order, []model.StatusEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]model.Order, len(s.orders))
	copy(orders, s.orders)
	statuses := make([]model.StatusEntry, len(s.statuses))
	copy(statuses, s.statuses)
	return orders, statuses, s.loaded
}

// SetStatus mutates exactly one order's status after the remote update was
// confirmed, resolving the new label from the held catalog. Returns false
// when the order is not in the snapshot.
func (s *OrderStore) SetStatus(orderID int64, statusID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}
		s.orders[i].StatusID = statusID
		// The catalog may not cover the selected status; a stale label is
		// worse than none, so clear it until the next refetch fills it in.
		s.orders[i].StatusLabel = ""
		for _, entry := range s.statuses {
			if entry.StatusID == statusID {
				s.orders[i].StatusLabel = entry.Description
				break
			}
		}
		return true
	}
	return false
}
