package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/luminedu/shift-planner-api/api/swagger"
	"github.com/luminedu/shift-planner-api/internal/handler"
	"github.com/luminedu/shift-planner-api/internal/middleware"
	"github.com/luminedu/shift-planner-api/internal/repository"
	"github.com/luminedu/shift-planner-api/internal/service"
	"github.com/luminedu/shift-planner-api/pkg/cache"
	"github.com/luminedu/shift-planner-api/pkg/config"
	"github.com/luminedu/shift-planner-api/pkg/database"
	"github.com/luminedu/shift-planner-api/pkg/logger"
	corsmiddleware "github.com/luminedu/shift-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/luminedu/shift-planner-api/pkg/middleware/requestid"
)

// @title Shift Planner API
// @version 0.1.0
// @description Teacher shift scheduling for teaching institutions
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Roster.CacheTTL, logr, false)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Roster.CacheTTL, logr, true)
	}

	shiftRepo := repository.NewShiftRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	lessonRepo := repository.NewLessonRepository(db)

	shiftSvc := service.NewShiftService(shiftRepo, teacherRepo, lessonRepo, cacheSvc, metricsSvc, nil, logr, cfg.Roster.DefaultStartTime, cfg.Roster.DefaultEndTime)
	statsSvc := service.NewStatsService(shiftRepo, teacherRepo, lessonRepo, cacheSvc, metricsSvc, logr)
	exportSvc := service.NewExportService(shiftRepo, teacherRepo, logr, cfg.Roster.ExportEnabled)

	shiftHandler := handler.NewShiftHandler(shiftSvc, exportSvc)
	teacherHandler := handler.NewTeacherHandler(teacherRepo, statsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		api.GET("/teachers", teacherHandler.List)
		api.GET("/teachers/:id/workload", teacherHandler.Workload)

		api.GET("/shifts", shiftHandler.List)
		api.GET("/shifts/calendar", shiftHandler.Calendar)
		api.GET("/shifts/export", shiftHandler.Export)
		api.POST("/shifts", shiftHandler.Assign)
		api.POST("/shifts/batch", shiftHandler.BatchAssign)
		api.POST("/shifts/commit", shiftHandler.CommitDraft)
		api.PUT("/shifts/:id/times", shiftHandler.UpdateTimes)
		api.DELETE("/shifts", shiftHandler.Remove)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
