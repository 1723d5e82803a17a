package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/mfcarvalho/painel-pedidos/internal/config"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/repository"
)

// Module wires PostgreSQL storage, repository adapters and the insert listener.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.StatusRepository { return s.Statuses() },
		newInsertListener,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type listenerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newInsertListener(p listenerParams) repository.InsertListener {
	return NewInsertListener(p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
