package highlight

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const markerKeyPrefix = "pedido_novo:"

// Marker records transient "new order" markers. Each marker expires on its
// own after the configured TTL; nothing ever deletes one explicitly.
type Marker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMarker builds a marker store on top of the provided redis client.
func NewMarker(client *redis.Client, ttl time.Duration) *Marker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Marker{client: client, ttl: ttl}
}

func markerKey(orderID int64) string {
	return markerKeyPrefix + strconv.FormatInt(orderID, 10)
}

// MarkNew flags an order as freshly inserted. SetNX keeps the first
// notification's TTL if duplicates arrive.
func (m *Marker) MarkNew(ctx context.Context, orderID int64) error {
	return m.client.SetNX(ctx, markerKey(orderID), 1, m.ttl).Err()
}

// ActiveIDs reports which of the given orders still carry a live marker.
func (m *Marker) ActiveIDs(ctx context.Context, orderIDs []int64) (map[int64]bool, error) {
	active := make(map[int64]bool, len(orderIDs))
	if len(orderIDs) == 0 {
		return active, nil
	}

	pipe := m.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(orderIDs))
	for i, id := range orderIDs {
		cmds[i] = pipe.Exists(ctx, markerKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	for i, cmd := range cmds {
		if cmd.Val() > 0 {
			active[orderIDs[i]] = true
		}
	}
	return active, nil
}
