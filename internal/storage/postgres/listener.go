package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// insertChannel is the pg_notify channel the insert trigger publishes to.
const insertChannel = "pedido_inserido"

// InsertListener receives order-insert notifications over a dedicated
// connection. LISTEN/NOTIFY cannot share the pool, so the listener dials its
// own connection from the DSN.
type InsertListener struct {
	dsn    string
	logger *slog.Logger
}

// NewInsertListener constructs the listener.
func NewInsertListener(dsn string, logger *slog.Logger) *InsertListener {
	return &InsertListener{dsn: dsn, logger: logger}
}

// Listen blocks delivering inserted order identifiers to handler until ctx is
// cancelled or the connection fails. No reconnect is attempted; retries are
// the caller's decision.
func (l *InsertListener) Listen(ctx context.Context, handler func(orderID int64)) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect listener: %w", err)
	}
	defer func() {
		_ = conn.Close(context.Background())
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+insertChannel); err != nil {
		return fmt.Errorf("listen %s: %w", insertChannel, err)
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("wait notification: %w", err)
		}

		orderID, err := parseInsertPayload(notification.Payload)
		if err != nil {
			l.logger.Warn("discarding malformed insert notification",
				slog.String("payload", notification.Payload),
				slog.String("error", err.Error()),
			)
			continue
		}
		handler(orderID)
	}
}

func parseInsertPayload(payload string) (int64, error) {
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse payload: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("non-positive order id %d", id)
	}
	return id, nil
}
