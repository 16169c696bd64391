package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/roadcast/roadcast/internal/api/http"
	"github.com/roadcast/roadcast/internal/config"
	"github.com/roadcast/roadcast/internal/forecast"
	"github.com/roadcast/roadcast/internal/scheduler"
	"github.com/roadcast/roadcast/internal/weather"
	"github.com/roadcast/roadcast/internal/weather/providers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.ResolveCoordinates(); err != nil {
		slog.Error("failed to resolve coordinates", "err", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	openMeteo := providers.NewOpenMeteoClient(httpClient, cfg.Latitude, cfg.Longitude, cfg.ForecastModel)
	cache := forecast.NewCache(openMeteo.FetchDaily, cfg.CacheTTL)
	knmi := providers.NewKNMIClient(httpClient, cfg.KNMIAPIKey, cfg.KNMIDataset, cfg.KNMIDatasetVersion)

	svc := weather.NewService(cache, knmi)

	warmer := scheduler.New(cache, cfg.WarmInterval)
	if err := warmer.Start(); err != nil {
		slog.Error("failed to start forecast warmer", "err", err)
		os.Exit(1)
	}
	defer warmer.Stop()

	app := httpapi.NewApp()
	httpapi.RegisterRoutes(app, svc)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "err", err)
	}
	slog.Info("server stopped")
}
