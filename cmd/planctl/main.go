package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/infra"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var source string

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "planctl",
		Short: "Operator tool for the wayfarer trip planner",
	}

	rootCmd.PersistentFlags().StringVar(&source, "source", "", "catalog source: builtin or postgres (default CATALOG_SOURCE)")

	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.AppConfig {
	cfg := config.Load()
	if source != "" {
		cfg.Catalog.Source = source
	}
	return cfg
}

func newLogger() *zap.Logger {
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func getCatalog(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (services.CatalogServiceInterface, error) {
	if cfg.Catalog.Source != "postgres" {
		return services.NewBuiltinCatalogService(), nil
	}
	db, err := infra.InitPostgresql(cfg.Catalog.PostgresURL, log)
	if err != nil {
		return nil, err
	}
	defer infra.ClosePostgresql(db, log)
	return services.LoadCatalog(ctx, repositories.NewExperienceRepository(db), log)
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [category]",
		Short: "List experiences, optionally for one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			catalog, err := getCatalog(cmd.Context(), loadConfig(), log)
			if err != nil {
				return err
			}

			items := catalog.All()
			if len(args) == 1 {
				c, err := dm.ParseCategory(args[0])
				if err != nil {
					return err
				}
				items = catalog.ListByCategory(c)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tPRICE\tDURATION")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n", it.ID, it.Category, it.Name, it.Price, it.DurationLabel)
			}
			return w.Flush()
		},
	}
}

func suggestCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print the assistant's day-by-day plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			cfg := loadConfig()
			if provider != "" {
				cfg.AI.Provider = provider
			}
			catalog, err := getCatalog(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			gen, err := generatorFor(cmd.Context(), cfg, catalog, log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			plan, err := gen.Generate(ctx)
			if err != nil {
				return err
			}

			for _, day := range plan {
				fmt.Printf("Day %d: %s (%s, %s walking)\n", day.Day, day.Title, day.TotalDuration, day.WalkingDistance)
				for _, act := range day.Activities {
					fmt.Printf("  %s  %s %s [%s]\n", act.Time, act.Emoji, act.Label, act.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "template, openai or gemini (default SUGGESTION_PROVIDER)")
	return cmd
}

func generatorFor(ctx context.Context, cfg config.AppConfig, catalog services.CatalogServiceInterface, log *zap.Logger) (services.SuggestionGenerator, error) {
	template := services.NewTemplateSuggestionGenerator()
	switch cfg.AI.Provider {
	case "openai":
		return services.NewFallbackSuggestionGenerator(
			services.NewOpenAISuggestionGenerator(cfg.AI.APIKey, cfg.AI.Model, catalog), template, log), nil
	case "gemini":
		ai, err := services.NewGeminiSuggestionGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model, catalog)
		if err != nil {
			return nil, err
		}
		return services.NewFallbackSuggestionGenerator(ai, template, log), nil
	default:
		return template, nil
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the experiences table and insert the built-in dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			cfg := loadConfig()
			db, err := infra.InitPostgresql(cfg.Catalog.PostgresURL, log)
			if err != nil {
				return err
			}
			defer infra.ClosePostgresql(db, log)

			repo := repositories.NewExperienceRepository(db)
			if err := repo.Migrate(cmd.Context()); err != nil {
				return err
			}
			n, err := repo.Seed(cmd.Context(), services.BuiltinExperiences())
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d new experiences\n", n)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Confirm the suggested plan in a scratch session and write it as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			catalog, err := getCatalog(cmd.Context(), loadConfig(), log)
			if err != nil {
				return err
			}
			sess := services.NewPlannerSession("planctl", services.SessionDeps{Catalog: catalog, Log: log})
			count, err := sess.ConfirmPlan(cmd.Context())
			if err != nil {
				return err
			}

			items, total := sess.Itinerary()
			pdf, err := services.ExportItineraryPDF("Rome in three days", items, total)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Wrote %s (%d experiences, EUR %.2f)\n", out, count, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "itinerary.pdf", "output file")
	return cmd
}
