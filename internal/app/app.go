package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mfcarvalho/painel-pedidos/internal/adapter/highlight"
	"github.com/mfcarvalho/painel-pedidos/internal/config"
	"github.com/mfcarvalho/painel-pedidos/internal/domain/repository"
	"github.com/mfcarvalho/painel-pedidos/internal/server/ws"
	"github.com/mfcarvalho/painel-pedidos/internal/store"
	"github.com/mfcarvalho/painel-pedidos/internal/usecase"
	"github.com/mfcarvalho/painel-pedidos/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		store.New,
		NewPanelFacade,
		newHTTPServer,
		newRefresher,
		func(m *highlight.Marker) HighlightSource { return m },
		func(r *worker.Refresher) Fetcher { return r },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type refresherParams struct {
	fx.In

	Dashboard *usecase.DashboardUseCase
	Listener  repository.InsertListener
	Store     *store.OrderStore
	Hub       *ws.Hub
	Marker    *highlight.Marker
	Logger    *slog.Logger
}

func newRefresher(p refresherParams) *worker.Refresher {
	return worker.NewRefresher(p.Dashboard, p.Listener, p.Store, p.Hub, p.Marker, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.Refresher
	Hub        *ws.Hub
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting painel-pedidos", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			p.Hub.Close()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("painel-pedidos stopped")
			return nil
		},
	})
}
