package media_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/config"
	"wayfarer/pkg/media"
)

var Module = fx.Provide(provideMediaStore)

func provideMediaStore(cfg config.AppConfig) (*media.Store, error) {
	return media.NewStore(cfg.MediaDir)
}
