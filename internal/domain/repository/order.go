package repository

import (
	"context"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// OrderRepository describes read/mutate access to orders. List returns rows
// joined with their status description and line items, newest first.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, statusID int) error
}
