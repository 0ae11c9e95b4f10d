package realtime_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/api/realtime"
	"wayfarer/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideHub),
	fx.Provide(func(h *realtime.Hub) services.ChannelProvider { return h }),
)

func provideHub(lc fx.Lifecycle, log *zap.Logger) *realtime.Hub {
	hub := realtime.NewHub(log.Named("realtime"))
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go hub.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			hub.Stop()
			return nil
		},
	})
	return hub
}
