package weather

import (
	"context"
	"fmt"
)

// ForecastSource yields the current multi-day forecast payload. The forecast
// cache implements this.
type ForecastSource interface {
	Get(ctx context.Context) (Payload, error)
}

// WarningSource yields the currently relevant severe-weather warnings. It
// never fails: any upstream trouble degrades to an empty slice.
type WarningSource interface {
	ActiveWarnings(ctx context.Context) []Warning
}

// Service assembles the daily summary out of the forecast cache and the
// warnings feed.
type Service struct {
	forecasts ForecastSource
	warnings  WarningSource
}

func NewService(forecasts ForecastSource, warnings WarningSource) *Service {
	return &Service{
		forecasts: forecasts,
		warnings:  warnings,
	}
}

// DailySummary builds the summary for the given day index (0 = today).
// Returns ErrDayOutOfRange when the index is negative or beyond the forecast
// range, and ErrForecastUnavailable when no forecast can be obtained at all.
func (s *Service) DailySummary(ctx context.Context, dayIndex int) (DailySummary, error) {
	if dayIndex < 0 {
		return DailySummary{}, fmt.Errorf("%w: %d", ErrDayOutOfRange, dayIndex)
	}

	payload, err := s.forecasts.Get(ctx)
	if err != nil {
		return DailySummary{}, err
	}

	if dayIndex >= payload.Days() {
		return DailySummary{}, fmt.Errorf("%w: day %d, forecast has %d", ErrDayOutOfRange, dayIndex, payload.Days())
	}

	warnings := s.warnings.ActiveWarnings(ctx)

	return BuildSummary(payload, dayIndex, warnings), nil
}
