package session_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/services"
	mem "wayfarer/pkg/memcache"
)

var Module = fx.Provide(
	provideSessionStore, provideSessionService)

func provideSessionStore(cfg config.AppConfig) mem.SessionStore[*services.PlannerSession] {
	return mem.NewSessions[*services.PlannerSession](cfg.SessionTTL)
}

func provideSessionService(
	store mem.SessionStore[*services.PlannerSession],
	catalog services.CatalogServiceInterface,
	generator services.SuggestionGenerator,
	channels services.ChannelProvider,
	cfg config.AppConfig,
	log *zap.Logger,
) services.SessionServiceInterface {
	return services.NewSessionService(store, catalog, generator, channels, services.CheckInConfig{
		GeoTimeout: cfg.GeoTimeout,
		Latency:    cfg.CheckInLatency,
		Fallback:   services.DefaultMapCenter,
	}, log)
}
