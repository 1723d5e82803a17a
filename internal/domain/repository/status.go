package repository

import (
	"context"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// StatusRepository provides access to the status catalog.
type StatusRepository interface {
	ListByCategories(ctx context.Context, categories []int) ([]model.StatusEntry, error)
}
