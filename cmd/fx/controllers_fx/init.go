package controllers_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/internal/config"
	"wayfarer/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewWorkflowController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewSuggestionController),
	fx.Provide(controllers.NewMapController),
	fx.Provide(controllers.NewCheckInController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewRealtimeController),
	fx.Provide(provideChatLimiter))

func provideChatLimiter(cfg config.AppConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.ChatRatePerMin)
}
