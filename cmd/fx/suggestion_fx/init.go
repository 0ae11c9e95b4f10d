package suggestion_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/services"
)

var Module = fx.Provide(ProvideSuggestionGenerator)

// ProvideSuggestionGenerator creates the plan generator from SUGGESTION_PROVIDER.
// Model-backed generators fall back to the fixed template on any failure.
func ProvideSuggestionGenerator(
	lc fx.Lifecycle,
	cfg config.AppConfig,
	catalog services.CatalogServiceInterface,
	log *zap.Logger,
) (services.SuggestionGenerator, error) {
	template := services.NewTemplateSuggestionGenerator()

	switch cfg.AI.Provider {
	case "", "template":
		log.Info("using template suggestion generator")
		return template, nil
	case "openai":
		if cfg.AI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		log.Info("initializing suggestion generator", zap.String("provider", "openai"), zap.String("model", cfg.AI.Model))
		ai := services.NewOpenAISuggestionGenerator(cfg.AI.APIKey, cfg.AI.Model, catalog)
		return services.NewFallbackSuggestionGenerator(ai, template, log), nil
	case "gemini":
		if cfg.AI.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		log.Info("initializing suggestion generator", zap.String("provider", "gemini"), zap.String("model", cfg.AI.Model))
		ai, err := services.NewGeminiSuggestionGenerator(context.Background(), cfg.AI.APIKey, cfg.AI.Model, catalog)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return ai.Close() },
		})
		return services.NewFallbackSuggestionGenerator(ai, template, log), nil
	default:
		return nil, fmt.Errorf("unsupported suggestion provider: %s. Use 'template', 'openai' or 'gemini'", cfg.AI.Provider)
	}
}
