package catalog_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var builtinModule = fx.Provide(provideBuiltinCatalog)

var postgresModule = fx.Options(
	db_fx.Module,
	fx.Provide(provideExperienceRepo, providePostgresCatalog),
)

// Module picks the catalog source; "postgres" pulls in the database module.
func Module(source string) fx.Option {
	if source == "postgres" {
		return postgresModule
	}
	return builtinModule
}

func provideBuiltinCatalog(log *zap.Logger) services.CatalogServiceInterface {
	catalog := services.NewBuiltinCatalogService()
	log.Info("catalog loaded from built-in dataset", zap.Int("experiences", len(catalog.All())))
	return catalog
}

func provideExperienceRepo(db *gorm.DB) repositories.ExperienceRepository {
	return repositories.NewExperienceRepository(db)
}

func providePostgresCatalog(repo repositories.ExperienceRepository, log *zap.Logger) (services.CatalogServiceInterface, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return services.LoadCatalog(ctx, repo, log)
}
