package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusworks/tuition-api/api/swagger"
	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/handler"
	"github.com/campusworks/tuition-api/internal/middleware"
	"github.com/campusworks/tuition-api/internal/repository"
	"github.com/campusworks/tuition-api/internal/service"
	"github.com/campusworks/tuition-api/pkg/cache"
	"github.com/campusworks/tuition-api/pkg/config"
	"github.com/campusworks/tuition-api/pkg/database"
	"github.com/campusworks/tuition-api/pkg/logger"
	corsmiddleware "github.com/campusworks/tuition-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusworks/tuition-api/pkg/middleware/requestid"
)

// @title Tuition Management API
// @version 1.0.0
// @description CRUD backend for students, instructors, courses, and the failure audit log
// @BasePath /api
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

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	studentRepo := repository.NewStudentRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	exceptionLogRepo := repository.NewExceptionLogRepository(db)

	studentSvc := service.NewStudentService(studentRepo, cacheSvc, validate, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, courseRepo, cacheSvc, validate, logr)
	courseMapper := dto.NewCourseMapper(instructorSvc, studentSvc)
	courseSvc := service.NewCourseService(courseRepo, courseMapper, studentSvc, cacheSvc, validate, logr)
	exceptionLogSvc := service.NewExceptionLogService(exceptionLogRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

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
	api.Use(middleware.Audit(exceptionLogSvc))
	handler.RegisterRoutes(api, handler.Handlers{
		Students:      handler.NewStudentHandler(studentSvc),
		Instructors:   handler.NewInstructorHandler(instructorSvc),
		Courses:       handler.NewCourseHandler(courseSvc, cfg.Export.Enabled),
		ExceptionLogs: handler.NewExceptionLogHandler(exceptionLogSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
