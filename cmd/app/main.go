package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/cmd/fx/catalog_fx"
	"wayfarer/cmd/fx/config_fx"
	"wayfarer/cmd/fx/controllers_fx"
	"wayfarer/cmd/fx/logger_fx"
	"wayfarer/cmd/fx/media_fx"
	"wayfarer/cmd/fx/realtime_fx"
	"wayfarer/cmd/fx/session_fx"
	"wayfarer/cmd/fx/suggestion_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/internal/config"
	"wayfarer/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading the environment only")
	}
	cfg := config.Load()

	app := fx.New(
		config_fx.Module(cfg),
		logger_fx.Module,
		catalog_fx.Module(cfg.Catalog.Source),
		suggestion_fx.Module,
		realtime_fx.Module,
		session_fx.Module,
		media_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.AppConfig, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config      config.AppConfig
	ChatLimiter *middleware.RateLimiter

	Catalog    *controllers.CatalogController
	Session    *controllers.SessionController
	Workflow   *controllers.WorkflowController
	Itinerary  *controllers.ItineraryController
	Suggestion *controllers.SuggestionController
	Map        *controllers.MapController
	CheckIn    *controllers.CheckInController
	Chat       *controllers.ChatController
	Realtime   *controllers.RealtimeController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if !p.Config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())
	r.MaxMultipartMemory = 32 << 20

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.Static("/media", p.Config.MediaDir)

	catalogGroup := r.Group("/catalog")
	catalogGroup.GET("", p.Catalog.ListCatalog)
	catalogGroup.GET("/categories", p.Catalog.ListCategories)
	catalogGroup.GET("/:id", p.Catalog.GetExperience)

	r.POST("/sessions", p.Session.CreateSession)
	sessionGroup := r.Group("/sessions/:id")
	sessionGroup.GET("", p.Session.GetSession)
	sessionGroup.DELETE("", p.Session.DeleteSession)
	sessionGroup.GET("/ws", p.Realtime.Connect)

	workflowGroup := sessionGroup.Group("/workflow")
	workflowGroup.POST("/category", p.Workflow.SelectCategory)
	workflowGroup.POST("/day", p.Workflow.SetDay)
	workflowGroup.POST("/slot", p.Workflow.SetTimeSlot)
	workflowGroup.POST("/hold", p.Workflow.Hold)
	workflowGroup.POST("/confirm", p.Workflow.Confirm)
	workflowGroup.POST("/reset", p.Workflow.Reset)

	itineraryGroup := sessionGroup.Group("/itinerary")
	itineraryGroup.GET("", p.Itinerary.ListItinerary)
	itineraryGroup.POST("", p.Itinerary.AddItinerary)
	itineraryGroup.GET("/export.pdf", p.Itinerary.ExportPDF)
	itineraryGroup.DELETE("/:itemId", p.Itinerary.RemoveItinerary)
	itineraryGroup.POST("/:itemId/book", p.Itinerary.BookItem)

	suggestionGroup := sessionGroup.Group("/suggestion")
	suggestionGroup.GET("", p.Suggestion.GetSuggestion)
	suggestionGroup.POST("/activity", p.Suggestion.AddActivity)
	suggestionGroup.POST("/day/:day/confirm", p.Suggestion.ConfirmDay)
	suggestionGroup.POST("/confirm", p.Suggestion.ConfirmPlan)

	mapGroup := sessionGroup.Group("/map")
	mapGroup.GET("", p.Map.GetFrame)
	mapGroup.PUT("/day", p.Map.SetDayView)
	mapGroup.POST("/tap", p.Map.TapMarker)
	mapGroup.POST("/click", p.Map.ClickMap)

	checkinGroup := sessionGroup.Group("/checkins")
	checkinGroup.GET("", p.CheckIn.ListCheckIns)
	checkinGroup.POST("/prepare", p.CheckIn.Prepare)
	checkinGroup.PUT("/notes", p.CheckIn.SetNotes)
	checkinGroup.POST("/photos", p.CheckIn.AttachPhotos)
	checkinGroup.POST("/submit", p.CheckIn.Submit)
	checkinGroup.GET("/:code/qr", p.CheckIn.QRCode)

	chatGroup := sessionGroup.Group("/chat")
	chatGroup.GET("", p.Chat.GetChat)
	chatGroup.POST("", p.ChatLimiter.Limit(), p.Chat.PostMessage)
}
