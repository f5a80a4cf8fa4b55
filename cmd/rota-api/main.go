package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/shiftline/rota-api/api/swagger"
	"github.com/shiftline/rota-api/internal/handler"
	"github.com/shiftline/rota-api/internal/middleware"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/repository"
	"github.com/shiftline/rota-api/internal/scheduler"
	"github.com/shiftline/rota-api/internal/service"
	"github.com/shiftline/rota-api/pkg/cache"
	"github.com/shiftline/rota-api/pkg/config"
	"github.com/shiftline/rota-api/pkg/database"
	"github.com/shiftline/rota-api/pkg/jobs"
	"github.com/shiftline/rota-api/pkg/logger"
	corsmiddleware "github.com/shiftline/rota-api/pkg/middleware/cors"
	reqidmiddleware "github.com/shiftline/rota-api/pkg/middleware/requestid"
	"github.com/shiftline/rota-api/pkg/storage"
)

// @title Rota API
// @version 1.0.0
// @description Shift scheduling service for retail branches
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	exportRepo := repository.NewExportRepository(db)

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.GridCacheTTL, logr, redisClient != nil)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "rota-api",
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	branchSvc := service.NewBranchService(branchRepo, validate, logr)
	employeeSvc := service.NewEmployeeService(employeeRepo, branchRepo, validate, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, employeeRepo, db, validate, logr)

	engine := scheduler.NewEngine(logr, cfg.Scheduler.MaxRepairPasses)
	scheduleSvc := service.NewScheduleService(
		branchRepo,
		employeeRepo,
		availabilityRepo,
		scheduleRepo,
		shiftRepo,
		engine,
		cacheSvc,
		db,
		validate,
		logr,
		service.ScheduleServiceConfig{GridCacheTTL: cfg.Scheduler.GridCacheTTL},
	)
	shiftSvc := service.NewShiftService(shiftRepo, scheduleRepo, employeeRepo, cacheSvc, validate, logr)
	tradeSvc := service.NewTradeService(tradeRepo, shiftRepo, employeeRepo, scheduleRepo, cacheSvc, db, validate, logr)

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(exportRepo, scheduleRepo, shiftRepo, fileStore, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, validate, logr)

	queue := jobs.NewQueue("schedule_export", exportSvc.Process, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		Logger:     logr,
	})
	exportSvc.SetQueue(queue)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Exports.Enabled {
		queue.Start(ctx)
		defer queue.Stop()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	branchHandler := handler.NewBranchHandler(branchSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc, employeeSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	shiftHandler := handler.NewShiftHandler(shiftSvc, employeeSvc)
	tradeHandler := handler.NewTradeHandler(tradeSvc, employeeSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	base := r.Group(cfg.APIPrefix)

	auth := base.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	authed := base.Group("")
	authed.Use(middleware.JWT(authSvc), middleware.WithResponseMeta())

	authed.POST("/auth/logout", authHandler.Logout)
	authed.POST("/auth/change-password", authHandler.ChangePassword)

	authed.GET("/me", employeeHandler.Me)
	authed.GET("/me/shifts", shiftHandler.ListMine)

	manager := authed.Group("")
	manager.Use(middleware.RequireRoles(models.RoleManager))

	manager.GET("/users", userHandler.List)
	manager.POST("/users", userHandler.Create)
	manager.GET("/users/:id", userHandler.Get)
	manager.PUT("/users/:id", userHandler.Update)
	manager.DELETE("/users/:id", userHandler.Delete)

	authed.GET("/branches", branchHandler.List)
	authed.GET("/branches/:id", branchHandler.Get)
	manager.POST("/branches", branchHandler.Create)
	manager.PUT("/branches/:id", branchHandler.Update)
	manager.DELETE("/branches/:id", branchHandler.Deactivate)

	manager.GET("/employees", employeeHandler.List)
	manager.POST("/employees", employeeHandler.Create)
	authed.GET("/employees/:id", employeeHandler.Get)
	manager.PUT("/employees/:id", employeeHandler.Update)
	manager.DELETE("/employees/:id", employeeHandler.Deactivate)

	authed.GET("/employees/:id/availability", availabilityHandler.List)
	authed.PUT("/employees/:id/availability", availabilityHandler.Replace)
	authed.DELETE("/employees/:id/availability/:slotId", availabilityHandler.Delete)
	authed.GET("/employees/:id/shifts", shiftHandler.ListByEmployee)

	manager.POST("/schedules/generate", scheduleHandler.Generate)
	authed.GET("/schedules", scheduleHandler.List)
	authed.GET("/schedules/:id", scheduleHandler.Get)
	manager.DELETE("/schedules/:id", scheduleHandler.Delete)
	authed.GET("/schedules/:id/grid", scheduleHandler.GetGrid)
	authed.GET("/schedules/:id/settings", scheduleHandler.GetSettings)
	manager.PUT("/schedules/:id/settings", scheduleHandler.UpdateSettings)
	authed.GET("/schedules/:id/shifts", shiftHandler.ListBySchedule)

	manager.GET("/schedule-templates", scheduleHandler.ListTemplates)
	manager.POST("/schedule-templates", scheduleHandler.CreateTemplate)
	manager.DELETE("/schedule-templates/:id", scheduleHandler.DeleteTemplate)

	manager.POST("/shifts", shiftHandler.Create)
	authed.GET("/shifts/:id", shiftHandler.Get)
	manager.PUT("/shifts/:id", shiftHandler.Update)
	manager.DELETE("/shifts/:id", shiftHandler.Delete)

	authed.GET("/trades", tradeHandler.List)
	authed.POST("/trades", tradeHandler.Offer)
	authed.GET("/trades/:id", tradeHandler.Get)
	authed.POST("/trades/:id/accept", tradeHandler.Accept)
	manager.POST("/trades/:id/resolve", tradeHandler.Resolve)
	authed.POST("/trades/:id/cancel", tradeHandler.Cancel)

	if cfg.Exports.Enabled {
		manager.POST("/schedules/:id/exports", exportHandler.Request)
		manager.GET("/schedules/:id/exports", exportHandler.ListBySchedule)
		authed.GET("/exports/:id", exportHandler.Status)
		base.GET("/downloads/:token", exportHandler.Download)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
}
