package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/learnpulse/riskwatch-api/api/swagger"
	"github.com/learnpulse/riskwatch-api/internal/handler"
	"github.com/learnpulse/riskwatch-api/internal/middleware"
	"github.com/learnpulse/riskwatch-api/internal/repository"
	"github.com/learnpulse/riskwatch-api/internal/service"
	"github.com/learnpulse/riskwatch-api/pkg/cache"
	"github.com/learnpulse/riskwatch-api/pkg/config"
	"github.com/learnpulse/riskwatch-api/pkg/database"
	"github.com/learnpulse/riskwatch-api/pkg/logger"
	corsmiddleware "github.com/learnpulse/riskwatch-api/pkg/middleware/cors"
	reqidmiddleware "github.com/learnpulse/riskwatch-api/pkg/middleware/requestid"
)

// @title Riskwatch API
// @version 0.1.0
// @description Student risk monitoring dashboard backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Backing store selection: without database credentials the service
	// degrades to the in-process demo roster instead of refusing to start.
	var store service.RosterStore
	demoMode := cfg.Roster.DemoMode || !cfg.Database.Configured()
	if demoMode {
		store = repository.NewDemoRosterRepository()
		logr.Sugar().Infow("running in demo mode, roster served from fixture")
	} else {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("database configured but unreachable", "error", err)
		}
		store = repository.NewPostgresRosterRepository(db)
	}

	if cfg.Roster.DefaultTeacherEmail != "" {
		// Accepted for config parity; not applied to any roster query.
		logr.Sugar().Infow("default teacher email configured but not applied",
			"email", cfg.Roster.DefaultTeacherEmail)
	}

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, summary cache disabled", "error", err)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
	}

	validate := validator.New()

	rosterSvc := service.NewRosterService(store, logr)
	overviewSvc := service.NewOverviewService(rosterSvc, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	overrideSvc := service.NewOverrideService(rosterSvc, overviewSvc, metrics, logr)
	exportSvc := service.NewExportService(rosterSvc, logr)
	authSvc := service.NewAuthService(
		repository.NewMemoryTokenStore(),
		service.NewLogMailer(logr),
		validate,
		logr,
		service.AuthConfig{
			SessionSecret: cfg.Session.Secret,
			SessionTTL:    cfg.Session.TTL,
			MagicLinkTTL:  cfg.Session.MagicLinkTTL,
			BaseURL:       cfg.BaseURL,
			AllowDemoAuth: cfg.Session.AllowDemoAuth || demoMode,
		},
	)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(overviewSvc)
	dashboardHandler := handler.NewDashboardHandler(overviewSvc)
	overrideHandler := handler.NewOverrideHandler(overrideSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": store.Name()})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := r.Group("/auth")
	auth.POST("/link", authHandler.RequestLink)
	auth.POST("/verify", authHandler.Verify)
	auth.GET("/verify", authHandler.Verify)
	auth.POST("/demo", authHandler.Demo)
	auth.POST("/logout", authHandler.Logout)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Session(authSvc))
	api.GET("/students", studentHandler.List)
	api.GET("/students/:id", studentHandler.Get)
	api.POST("/students/:id/override", overrideHandler.Open)
	api.GET("/override", overrideHandler.Session)
	api.POST("/override/commit", overrideHandler.Commit)
	api.DELETE("/override", overrideHandler.Cancel)
	api.GET("/dashboard/summary", dashboardHandler.Summary)
	api.GET("/exports/roster", exportHandler.Roster)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", store.Name())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
