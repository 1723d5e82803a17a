package usecase

import (
	"go.uber.org/fx"

	"github.com/mfcarvalho/painel-pedidos/internal/config"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(NewAuthUseCase),
	fx.Provide(newDashboardUseCase),
)

type dashboardParams struct {
	fx.In

	Orders   repository.OrderRepository
	Statuses repository.StatusRepository
	Users    repository.UserRepository
	Config   *config.Config
}

func newDashboardUseCase(p dashboardParams) *DashboardUseCase {
	return NewDashboardUseCase(p.Orders, p.Statuses, p.Users, p.Config.FilterCategories, p.Config.SelectCategories)
}
