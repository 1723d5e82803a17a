package highlight

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/mfcarvalho/painel-pedidos/internal/config"
)

// Module wires the redis client and highlight marker store.
var Module = fx.Options(
	fx.Provide(newRedisClient),
	fx.Provide(newMarker),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Config *config.Config
}

func newRedisClient(p clientParams) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
}

type markerParams struct {
	fx.In

	Client *redis.Client
	Config *config.Config
}

func newMarker(p markerParams) *Marker {
	return NewMarker(p.Client, p.Config.HighlightTTL)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
