package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/handler"
	"github.com/KasumiMercury/primind-event-reminder/internal/health"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/eventrecorder"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/preference"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/session"
	"github.com/KasumiMercury/primind-event-reminder/internal/notification"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/delivery"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("event-reminder")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	center, err := notification.Init(notification.HandlerConfig{
		ShowAlert: cfg.Notification.ShowAlert,
		PlaySound: cfg.Notification.PlaySound,
		SetBadge:  cfg.Notification.SetBadge,
		ChannelID: cfg.Notification.ChannelID,
	})
	if err != nil {
		slog.Error("failed to initialize notification center", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB locally, BigQuery on gcloud
	eventRecorder, err := eventrecorder.NewRecorder(ctx, eventrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize notification event recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := eventRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush notification event recorder", slog.String("error", err.Error()))
		}
		if err := eventRecorder.Close(); err != nil {
			slog.Warn("failed to close notification event recorder", slog.String("error", err.Error()))
		}
	}()

	for _, kind := range []domain.NotificationEventKind{domain.NotificationReceived, domain.NotificationResponse} {
		sub, err := center.Subscribe(kind, eventrecorder.Listener(eventRecorder))
		if err != nil {
			slog.Error("failed to subscribe notification event recorder", slog.String("error", err.Error()))
			return 1
		}
		defer sub.Unsubscribe()
	}

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	db, err := preference.OpenDatabase(cfg.Database)
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "postgres.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to access database handle", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := preference.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate preference schema", slog.String("error", err.Error()))
		return 1
	}

	slog.Info("database connected")

	sessions := session.NewProvider()
	preferenceRepo := preference.NewCachedRepository(
		preference.NewPostgresRepository(db),
		redisClient,
		cfg.Reminder.PreferenceCacheTTL,
	)
	reminderRegistry := repository.NewReminderRepository(redisClient)

	reminderService := reminder.NewService(
		sessions,
		preferenceRepo,
		taskQueue,
		reminderRegistry,
		reminderMetrics,
		reminder.Config{
			DefaultLeadMinutes: cfg.Reminder.DefaultLeadMinutes,
			NotificationTitle:  cfg.Reminder.NotificationTitle,
			Presentation:       center.HandlerConfig().Presentation(),
		},
	)
	deliveryService := delivery.NewService(reminderRegistry, center, reminderMetrics)

	reminderHandler := handler.NewReminderHandler(reminderService)
	preferenceHandler := handler.NewPreferenceHandler(sessions, preferenceRepo, cfg.Reminder.DefaultLeadMinutes)
	notificationHandler := handler.NewNotificationHandler(deliveryService, sessions)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-event-reminder/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, sqlDB, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		// Task queue callback; the caller is the queue, not a user.
		v1.POST("/notifications/fire", session.RequireCaller(newCallbackAuthenticator(cfg)), notificationHandler.HandleFire)
	}

	authed := v1.Group("", session.Middleware(newAuthenticator(cfg)))
	{
		authed.POST("/reminders", reminderHandler.HandleSchedule)
		authed.GET("/reminders", reminderHandler.HandleList)
		authed.DELETE("/reminders", reminderHandler.HandleCancelAll)
		authed.POST("/reminders/cancel", reminderHandler.HandleCancel)

		authed.GET("/preferences/reminder", preferenceHandler.HandleGet)
		authed.PUT("/preferences/reminder", preferenceHandler.HandlePut)

		authed.POST("/notifications/response", notificationHandler.HandleResponse)
	}

	// gRPC health shares the port with the REST API over h2c
	mux := http.NewServeMux()
	grpcHealthPath, grpcHealthHandler := grpchealth.NewHandler(health.NewGRPCChecker(healthChecker))
	mux.Handle(grpcHealthPath, grpcHealthHandler)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("default_lead_minutes", cfg.Reminder.DefaultLeadMinutes),
			slog.Duration("preference_cache_ttl", cfg.Reminder.PreferenceCacheTTL),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
