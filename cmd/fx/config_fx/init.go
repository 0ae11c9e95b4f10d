package config_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/config"
)

// Module supplies the already loaded configuration; main needs it before the
// graph is built to pick the catalog source.
func Module(cfg config.AppConfig) fx.Option {
	return fx.Supply(cfg)
}
