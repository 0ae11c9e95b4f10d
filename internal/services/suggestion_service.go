package services

import (
	"context"

	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
)

// SuggestionGenerator produces a multi-day plan. Implementations never read
// or mutate an itinerary.
type SuggestionGenerator interface {
	Generate(ctx context.Context) ([]dm.DayRoute, error)
	Name() string
}

type TemplateSuggestionGenerator struct{}

func NewTemplateSuggestionGenerator() SuggestionGenerator {
	return TemplateSuggestionGenerator{}
}

// Generate returns a fresh copy of the fixed 3-day route on every call.
func (TemplateSuggestionGenerator) Generate(ctx context.Context) ([]dm.DayRoute, error) {
	routes := templatePlan()
	for i := range routes {
		routes[i].SortActivities()
	}
	return routes, nil
}

func (TemplateSuggestionGenerator) Name() string { return "template" }

// FallbackSuggestionGenerator tries primary and serves fallback on any error.
type FallbackSuggestionGenerator struct {
	primary  SuggestionGenerator
	fallback SuggestionGenerator
	log      *zap.Logger
}

func NewFallbackSuggestionGenerator(primary, fallback SuggestionGenerator, log *zap.Logger) SuggestionGenerator {
	return &FallbackSuggestionGenerator{primary: primary, fallback: fallback, log: log}
}

func (f *FallbackSuggestionGenerator) Generate(ctx context.Context) ([]dm.DayRoute, error) {
	routes, err := f.primary.Generate(ctx)
	if err == nil && len(routes) > 0 {
		return routes, nil
	}
	f.log.Warn("suggestion generator failed, serving fallback",
		zap.String("generator", f.primary.Name()),
		zap.String("fallback", f.fallback.Name()),
		zap.Error(err))
	return f.fallback.Generate(ctx)
}

func (f *FallbackSuggestionGenerator) Name() string {
	return f.primary.Name() + "+" + f.fallback.Name()
}
