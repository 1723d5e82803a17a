package repository

import (
	"context"

	"github.com/mfcarvalho/painel-pedidos/internal/domain/model"
)

// UserRepository describes persistence operations for dashboard accounts.
// IsAdmin executes the server-side authorization predicate.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	IsAdmin(ctx context.Context, id int64) (bool, error)
}
