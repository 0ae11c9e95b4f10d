package config

import (
	"strings"
	"time"

	"wayfarer/pkg/utils"
)

type AppConfig struct {
	Port    string
	AppEnv  string
	Catalog CatalogConfig
	AI      SuggestionConfig

	GeoTimeout     time.Duration
	CheckInLatency time.Duration
	SessionTTL     time.Duration
	MediaDir       string
	ChatRatePerMin int
}

type CatalogConfig struct {
	Source      string // "builtin" or "postgres"
	PostgresURL string
}

// SuggestionConfig selects the plan generator; keys are only read for the
// chosen provider.
type SuggestionConfig struct {
	Provider string // "template", "openai" or "gemini"
	APIKey   string
	Model    string
}

func (c AppConfig) IsDev() bool { return c.AppEnv == "dev" }

// Load reads the environment. Call godotenv.Load first if a .env is wanted.
func Load() AppConfig {
	cfg := AppConfig{
		Port:   utils.GetEnvWithDefault("PORT", "8080"),
		AppEnv: strings.ToLower(utils.GetEnvWithDefault("APP_ENV", "production")),
		Catalog: CatalogConfig{
			Source:      strings.ToLower(utils.GetEnvWithDefault("CATALOG_SOURCE", "builtin")),
			PostgresURL: utils.GetEnvWithDefault("POSTGRES_URL", ""),
		},
		GeoTimeout:     utils.GetDurationEnv("GEO_TIMEOUT", 8*time.Second),
		CheckInLatency: utils.GetDurationEnv("CHECKIN_LATENCY", 600*time.Millisecond),
		SessionTTL:     utils.GetDurationEnv("SESSION_TTL", 2*time.Hour),
		MediaDir:       utils.GetEnvWithDefault("MEDIA_DIR", "./media"),
		ChatRatePerMin: utils.GetIntEnv("CHAT_RATE_PER_MIN", 30),
	}

	cfg.AI.Provider = strings.ToLower(utils.GetEnvWithDefault("SUGGESTION_PROVIDER", "template"))
	switch cfg.AI.Provider {
	case "openai":
		cfg.AI.APIKey = utils.GetEnvWithDefault("OPENAI_API_KEY", "")
		cfg.AI.Model = utils.GetEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	case "gemini":
		cfg.AI.APIKey = utils.GetEnvWithDefault("GEMINI_API_KEY", "")
		cfg.AI.Model = utils.GetEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
	}
	return cfg
}
