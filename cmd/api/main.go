package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/novu-go/internal/config"
	"github.com/kursadbilgin/novu-go/internal/handler"
	"github.com/kursadbilgin/novu-go/internal/observability"
	"github.com/kursadbilgin/novu-go/internal/transport"
	"github.com/kursadbilgin/novu-go/pkg/novu"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, "gateway")
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	client, err := novu.New(
		cfg.NovuAPIKey,
		novu.WithBaseURL(cfg.NovuAPIURL),
		novu.WithTimeout(cfg.HTTPTimeout()),
		novu.WithLogger(logger),
		novu.WithObserver(metrics),
	)
	if err != nil {
		logger.Fatal("novu client initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          transport.ErrorHandler(logger),
		DisableStartupMessage: true,
	})
	app.Use(transport.CorrelationID())
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, metrics.Handler())
	if err := handler.RegisterNovuRoutes(app, client); err != nil {
		logger.Fatal("route registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	}()

	logger.Info("novu gateway started",
		zap.Int("port", cfg.APIPort),
		zap.String("novuApiUrl", client.BaseURL()),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("http server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
