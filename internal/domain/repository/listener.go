package repository

import "context"

// InsertListener delivers order-insert notifications. Listen blocks until the
// context is cancelled or the transport fails; no reconnect is attempted.
type InsertListener interface {
	Listen(ctx context.Context, handler func(orderID int64)) error
}
