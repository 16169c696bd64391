package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/roadcast/roadcast/internal/config"
	"github.com/roadcast/roadcast/internal/forecast"
	"github.com/roadcast/roadcast/internal/weather"
	"github.com/roadcast/roadcast/internal/weather/providers"
)

// The service is built once per execution environment, so the forecast cache
// survives across warm invocations.
var svc *weather.Service

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

	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	openMeteo := providers.NewOpenMeteoClient(httpClient, cfg.Latitude, cfg.Longitude, cfg.ForecastModel)
	cache := forecast.NewCache(openMeteo.FetchDaily, cfg.CacheTTL)
	knmi := providers.NewKNMIClient(httpClient, cfg.KNMIAPIKey, cfg.KNMIDataset, cfg.KNMIDatasetVersion)

	svc = weather.NewService(cache, knmi)

	lambda.Start(handle)
}

func handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	day := parseDay(req.QueryStringParameters["day"])

	summary, err := svc.DailySummary(ctx, day)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrDayOutOfRange):
			return errorResponse(http.StatusBadRequest, weather.ErrDayOutOfRange.Error()), nil
		case errors.Is(err, weather.ErrForecastUnavailable):
			return errorResponse(http.StatusInternalServerError, weather.ErrForecastUnavailable.Error()), nil
		default:
			return errorResponse(http.StatusInternalServerError, err.Error()), nil
		}
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err.Error()), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

// parseDay mirrors the endpoint's lenient parameter handling: anything that is
// not a non-negative integer falls back to today.
func parseDay(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func errorResponse(status int, msg string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
