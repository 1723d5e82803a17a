package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mfcarvalho/painel-pedidos/internal/server/http/handlers"
	"github.com/mfcarvalho/painel-pedidos/internal/server/http/middleware"
	"github.com/mfcarvalho/painel-pedidos/internal/server/ws"
)

// Setup configures gin router with handlers and middleware. Everything under
// the orders surface requires an authenticated administrator.
func Setup(facade handlers.PanelFacade, stream *ws.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	// The websocket endpoint hijacks the connection; gzip must not wrap it.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/orders/ws"})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	session := auth.Group("")
	session.Use(middleware.AuthRequired(facade))
	session.POST("/logout", authHandler.Logout)
	session.GET("/session", authHandler.Session)

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(facade))
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/orders", orderHandler.List)
	admin.POST("/orders/refresh", orderHandler.Refresh)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.GET("/statuses", orderHandler.Statuses)
	admin.GET("/orders/ws", stream.Stream)

	return engine
}
