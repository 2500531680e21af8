package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	fulfillmenthttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/tracking"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	db, err := openDatabase(config)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierDTO{}); err != nil {
		logger.Error("failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, db)

	tracker, err := root.CreateTracker(logger)
	if err != nil {
		logger.Error("failed to build order tracker", "error", err)
		os.Exit(1)
	}
	defer tracker.Stop()

	// Orders that were in flight when the previous process stopped resume
	// polling here.
	if err := reenrollActiveOrders(&root, tracker, logger); err != nil {
		logger.Error("failed to re-enroll active orders", "error", err)
		os.Exit(1)
	}

	jobManager := root.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := buildWebServer(&root, tracker)

	// Server failures feed the same shutdown path as signals so the
	// deferred tracker and job teardown always runs.
	serverErrors := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if serveErr := e.Start(addr); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			serverErrors <- serveErr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case serveErr := <-serverErrors:
		logger.Error("http server stopped", "error", serveErr)
	case <-quit:
		logger.Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", "postgres"),
		DBName:                getEnv("DB_NAME", "fulfillment"),
		DBSslMode:             getEnv("DB_SSLMODE", "disable"),
		TrackingPollInterval:  getDurationEnv("TRACKING_POLL_INTERVAL", time.Minute, logger),
		CourierReclaimTimeout: getDurationEnv("COURIER_RECLAIM_TIMEOUT", 20*time.Minute, logger),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration, logger *slog.Logger) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		logger.Warn("invalid duration value, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode,
	)

	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
}

func reenrollActiveOrders(
	root *cmd.CompositionRoot,
	tracker *tracking.Tracker,
	logger *slog.Logger,
) error {
	handler := root.CreateGetUncompletedOrdersQueryHandler()

	orders, err := handler.Handle(context.Background(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return err
	}

	for _, o := range orders {
		if err := tracker.StartTracking(o.ID); err != nil {
			return err
		}
	}

	if len(orders) > 0 {
		logger.Info("active orders re-enrolled for tracking", "count", len(orders))
	}
	return nil
}

func buildWebServer(root *cmd.CompositionRoot, tracker fulfillmenthttp.OrderTracker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := fulfillmenthttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateCreateCourierCommandHandler(),
		root.CreateAssignCourierCommandHandler(),
		root.CreateReleaseCourierCommandHandler(),
		root.CreateGetAllCouriersQueryHandler(),
		root.CreateGetUncompletedOrdersQueryHandler(),
		tracker,
	)
	server.RegisterRoutes(e)

	return e
}
