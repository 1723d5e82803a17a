package di

import (
	"github.com/mfcarvalho/painel-pedidos/internal/adapter/highlight"
	"github.com/mfcarvalho/painel-pedidos/internal/app"
	"github.com/mfcarvalho/painel-pedidos/internal/config"
	"github.com/mfcarvalho/painel-pedidos/internal/logger"
	"github.com/mfcarvalho/painel-pedidos/internal/pkg/auth"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/handlers"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/router"
	"github.com/mfcarvalho/painel-pedidos/internal/server/ws"
	"github.com/mfcarvalho/painel-pedidos/internal/storage/postgres"
	"github.com/mfcarvalho/painel-pedidos/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		highlight.Module,
		usecase.Module,
		ws.Module,
		fx.Provide(func(f *app.PanelFacade) handlers.PanelFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
