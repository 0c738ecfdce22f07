// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"simonev/internal/cache"
	"simonev/internal/config"
	"simonev/internal/database"
	"simonev/internal/featureflags"
	"simonev/internal/middleware"
	"simonev/internal/models"
	"simonev/internal/notifications"
	"simonev/internal/observability"
	"simonev/internal/repository"
	"simonev/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Feature flags controlling background loops.
const (
	quotaSchedulerFlag = "quota_scheduler"
	realtimePushFlag   = "realtime_notifications"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	tracingStop    func(context.Context) error

	userRepo         repository.UserRepository
	skpdRepo         repository.SkpdRepository
	kategoriRepo     repository.KategoriRepository
	contentRepo      repository.ContentRepository
	verificationRepo repository.VerificationRepository
	notificationRepo repository.NotificationRepository
	activityLogRepo  repository.ActivityLogRepository

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	featureFlags *featureflags.Manager

	userService         *service.UserService
	skpdService         *service.SkpdService
	kategoriService     *service.KategoriService
	contentService      *service.ContentService
	verificationService *service.VerificationService
	notificationService *service.NotificationService
	activityLogService  *service.ActivityLogService
	reportService       *service.ReportService
	quotaScheduler      *service.QuotaScheduler
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("simonev-api"),
		userRepo:         repository.NewUserRepository(db),
		skpdRepo:         repository.NewSkpdRepository(db),
		kategoriRepo:     repository.NewKategoriRepository(db),
		contentRepo:      repository.NewContentRepository(db),
		verificationRepo: repository.NewVerificationRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		activityLogRepo:  repository.NewActivityLogRepository(db),
		featureFlags:     featureflags.NewManager(cfg.FeatureFlags),
	}

	// Realtime push degrades to stored-only notifications without Redis;
	// the hub still tracks local connections for the online indicator.
	server.notifier = notifications.NewNotifier(redisClient)
	server.hub = notifications.NewHub(redisClient)

	server.activityLogService = service.NewActivityLogService(server.activityLogRepo)
	server.notificationService = service.NewNotificationService(
		server.notificationRepo, server.userRepo, server.notifier)
	server.userService = service.NewUserService(
		server.userRepo, server.skpdRepo, server.activityLogService)
	server.skpdService = service.NewSkpdService(
		server.skpdRepo, server.contentRepo, server.activityLogService)
	server.kategoriService = service.NewKategoriService(server.kategoriRepo)
	server.contentService = service.NewContentService(
		server.contentRepo, server.kategoriRepo, server.notificationService, server.activityLogService)
	server.verificationService = service.NewVerificationService(
		db, server.contentRepo, server.verificationRepo, server.notificationService)
	server.reportService = service.NewReportService(
		server.skpdRepo, server.contentRepo, server.activityLogRepo)

	interval, err := time.ParseDuration(cfg.QuotaCheckInterval)
	if err != nil {
		interval = time.Hour
	}
	server.quotaScheduler = service.NewQuotaScheduler(
		server.reportService, server.notificationService, interval)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing (no-op provider unless tracing is enabled)
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; CORS handles them.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "SIMONEV Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", middleware.AuthRequired, s.Me)

	// WebSocket notification stream; token arrives as a query parameter.
	api.Get("/ws/notifikasi", middleware.WebSocketAuthRequired, s.NotificationSocketHandler())

	protected := api.Group("", middleware.AuthRequired)

	// Content routes. Specific /:id/:resource routes come BEFORE generic /:id.
	konten := protected.Group("/konten")
	konten.Post("/", middleware.RoleRequired(models.RolePublisher), s.CreateContent)
	konten.Get("/", s.GetContents)
	konten.Get("/milik-saya", middleware.RoleRequired(models.RolePublisher), s.GetMyContents)
	konten.Post("/:id/approve",
		middleware.RoleRequired(models.RoleOperator, models.RoleAdmin), s.ApproveContent)
	konten.Post("/:id/reject",
		middleware.RoleRequired(models.RoleOperator, models.RoleAdmin), s.RejectContent)
	konten.Get("/:id/verifikasi", s.GetContentVerifications)
	konten.Get("/:id", s.GetContent)
	konten.Put("/:id", middleware.RoleRequired(models.RolePublisher), s.UpdateContent)
	konten.Delete("/:id", middleware.RoleRequired(models.RolePublisher), s.DeleteContent)

	// Verification queue and history for reviewers
	verifikasi := protected.Group("/verifikasi",
		middleware.RoleRequired(models.RoleOperator, models.RoleAdmin))
	verifikasi.Get("/antrian", s.GetVerificationQueue)
	verifikasi.Get("/riwayat", s.GetVerificationHistory)

	// SKPD routes; listing is open to all authenticated roles
	skpd := protected.Group("/skpd")
	skpd.Get("/", s.GetSkpds)
	skpd.Get("/:id", s.GetSkpd)
	skpd.Post("/", middleware.RoleRequired(models.RoleAdmin), s.CreateSkpd)
	skpd.Put("/:id", middleware.RoleRequired(models.RoleAdmin), s.UpdateSkpd)
	skpd.Delete("/:id", middleware.RoleRequired(models.RoleAdmin), s.DeleteSkpd)

	// Category routes
	kategori := protected.Group("/kategori")
	kategori.Get("/", s.GetKategoris)
	kategori.Post("/", middleware.RoleRequired(models.RoleAdmin), s.CreateKategori)
	kategori.Put("/:id", middleware.RoleRequired(models.RoleAdmin), s.UpdateKategori)

	// Account management is admin-only
	pengguna := protected.Group("/pengguna", middleware.RoleRequired(models.RoleAdmin))
	pengguna.Get("/", s.GetUsers)
	pengguna.Get("/:id", s.GetUser)
	pengguna.Post("/", s.CreateUser)
	pengguna.Put("/:id", s.UpdateUser)

	// Compliance reports
	laporan := protected.Group("/laporan",
		middleware.RoleRequired(models.RoleAdmin, models.RoleOperator))
	laporan.Get("/kepatuhan", s.GetComplianceReport)
	laporan.Get("/kepatuhan/export", s.ExportComplianceReport)
	laporan.Get("/dashboard", s.GetDashboard)

	// Audit trail
	protected.Get("/log-aktivitas",
		middleware.RoleRequired(models.RoleAdmin), s.GetActivityLogs)

	// Notifications
	notifikasi := protected.Group("/notifikasi")
	notifikasi.Get("/", s.GetMyNotifications)
	notifikasi.Get("/online",
		middleware.RoleRequired(models.RoleAdmin, models.RoleOperator), s.GetOnlineUsers)
	notifikasi.Post("/baca-semua", s.MarkAllNotificationsRead)
	notifikasi.Post("/:id/baca", s.MarkNotificationRead)

	// Admin routes
	admin := protected.Group("/admin", middleware.RoleRequired(models.RoleAdmin))
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is required for realtime push, so readiness reports it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	tracingStop, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "simonev-api",
		ServiceVersion: "1.0.0",
		Environment:    s.config.Env,
		Enabled:        s.config.TracingEnabled,
		Exporter:       s.config.TracingExporter,
		OTLPEndpoint:   s.config.TracingOTLPEndpoint,
		SamplerRatio:   s.config.TracingSamplerRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	s.tracingStop = tracingStop

	app := fiber.New(fiber.Config{
		AppName: "SIMONEV API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Online/offline transitions feed the structured log for operations.
	s.hub.SetPresenceCallbacks(
		func(userID uint) {
			middleware.Logger.Info("user online", "user_id", userID)
		},
		func(userID uint) {
			middleware.Logger.Info("user offline", "user_id", userID)
		},
	)

	// Wire the notification hub to the Redis subscriber if available
	if s.featureFlags.Enabled(realtimePushFlag, 0) {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
			}
		}()
	}

	// Quota evaluation loop runs behind a feature flag
	if s.featureFlags.Enabled(quotaSchedulerFlag, 0) {
		go s.quotaScheduler.Run(s.shutdownCtx)
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop wiring and scheduler goroutines
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	if s.tracingStop != nil {
		if terr := s.tracingStop(ctx); terr != nil {
			log.Printf("error shutting down tracing: %v", terr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
