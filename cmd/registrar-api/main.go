package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/citc-dev/registrar-api/api/swagger"
	"github.com/citc-dev/registrar-api/internal/handler"
	"github.com/citc-dev/registrar-api/internal/middleware"
	"github.com/citc-dev/registrar-api/internal/repository"
	"github.com/citc-dev/registrar-api/internal/service"
	"github.com/citc-dev/registrar-api/pkg/cache"
	"github.com/citc-dev/registrar-api/pkg/config"
	"github.com/citc-dev/registrar-api/pkg/database"
	"github.com/citc-dev/registrar-api/pkg/export"
	"github.com/citc-dev/registrar-api/pkg/logger"
	corsmiddleware "github.com/citc-dev/registrar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/citc-dev/registrar-api/pkg/middleware/requestid"
	"github.com/citc-dev/registrar-api/pkg/token"
)

// @title Registrar API
// @version 1.0.0
// @description Backend for school records, registrations, enrollment, and registrar documents
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
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Dashboard.CacheTTL, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	validate := validator.New()

	curriculumRepo := repository.NewCurriculumRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	pdfExporter := export.NewPDFExporter()
	csvExporter := export.NewCSVExporter()
	downloadSigner := token.NewSigner(cfg.Documents.DownloadSecret, cfg.Documents.DownloadTTL)

	notificationSvc := service.NewNotificationService(notificationRepo, logr)
	curriculumSvc := service.NewCurriculumService(curriculumRepo, cacheSvc, logr, cfg.Registrar.CurriculumTTL)
	statusSvc := service.NewStatusService(userRepo, registrationRepo, studentRepo, enrollmentRepo, cfg.Registrar, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, curriculumRepo, enrollmentRepo, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, scheduleRepo, studentRepo, notificationRepo, validate, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, userRepo, studentRepo, cacheSvc, validate, logr)
	requestSvc := service.NewRequestService(requestRepo, studentRepo, enrollmentRepo, notificationRepo, pdfExporter, downloadSigner, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, requestRepo, validate, logr)
	exportSvc := service.NewExportService(enrollmentRepo, csvExporter, pdfExporter, logr)
	subjectSvc := service.NewSubjectService(curriculumRepo, scheduleRepo, cfg.Registrar, logr)
	studentSvc := service.NewStudentService(studentRepo, logr)

	curriculumHandler := handler.NewCurriculumHandler(curriculumSvc)
	statusHandler := handler.NewStatusHandler(statusSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc)
	requestHandler := handler.NewRequestHandler(requestSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/curriculum", curriculumHandler.Curriculum)
		api.GET("/subjects", subjectHandler.List)
		api.GET("/subjects/:id/schedules", subjectHandler.Schedules)
		api.GET("/students", studentHandler.List)
		api.GET("/students/:id/status", statusHandler.Status)

		if cfg.Dashboard.Enabled {
			api.GET("/dashboard/statistics", dashboardHandler.Statistics)
		}

		api.GET("/registrations", registrationHandler.List)
		api.POST("/registrations", registrationHandler.Register)
		api.GET("/registrations/:id", registrationHandler.Find)
		api.PATCH("/registrations/:id/review", registrationHandler.Review)

		api.GET("/enrollments", enrollmentHandler.List)
		api.POST("/enrollments", enrollmentHandler.Enroll)
		api.POST("/enrollments/:id/drop", enrollmentHandler.Drop)

		api.GET("/requests", requestHandler.List)
		api.POST("/requests", requestHandler.Create)
		api.PATCH("/requests/:id/status", requestHandler.UpdateStatus)
		api.POST("/requests/:id/download-link", requestHandler.DownloadLink)
		api.GET("/requests/:id/download", requestHandler.Download)

		api.GET("/payments", paymentHandler.List)
		api.POST("/payments", paymentHandler.Record)

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications", notificationHandler.Create)
		api.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

		api.GET("/exports/enrollments", exportHandler.Enrollments)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
