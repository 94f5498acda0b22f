package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"smartexpiry/internal/auth"
	"smartexpiry/internal/config"
	"smartexpiry/internal/db"
	"smartexpiry/internal/expiry"
	"smartexpiry/internal/handlers"
	"smartexpiry/internal/migrations"
	"smartexpiry/internal/queue"
	"smartexpiry/internal/routes"
	"smartexpiry/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database and schema
	db.InitDB(cfg)
	if err := migrations.Up(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize security features
	auth.InitSecurity()

	// Initialize task queue
	if err := queue.InitQueue(cfg.RedisAddr); err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}
	defer queue.Close()

	// Wire the expiry engine
	store := db.NewStore(db.DB)
	runner := expiry.NewRunner(store, cfg.NotificationRetention)
	handlers.InitPipeline(runner, store)

	scheduler := expiry.NewScheduler(runner, nil, cfg.StatusSchedule, cfg.PipelineSchedule)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Start the background worker
	w := worker.NewWorker(cfg.RedisAddr, runner, nil)
	go func() {
		if err := w.Start(ctx); err != nil {
			slog.Error("Worker failed", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	routes.SetupRoutes(api)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	slog.Info("SmartExpiry server running",
		"port", cfg.Port,
		"status_schedule", cfg.StatusSchedule,
		"pipeline_schedule", cfg.PipelineSchedule,
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down server cleanly", "error", err)
	}
}
