package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/roadcast/roadcast/internal/weather"
)

// Warmer periodically refreshes the forecast cache so the first request after
// a quiet period does not pay the upstream latency. It changes nothing about
// the per-request cache semantics and is disabled when the interval is zero.
type Warmer struct {
	scheduler *gocron.Scheduler
	forecasts weather.ForecastSource
	interval  time.Duration
}

func New(forecasts weather.ForecastSource, interval time.Duration) *Warmer {
	return &Warmer{
		scheduler: gocron.NewScheduler(time.UTC),
		forecasts: forecasts,
		interval:  interval,
	}
}

// Start schedules the warm job and starts the underlying scheduler.
func (w *Warmer) Start() error {
	if w.interval <= 0 {
		slog.Info("forecast warmer disabled")
		return nil
	}

	_, err := w.scheduler.Every(w.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := w.forecasts.Get(ctx); err != nil {
			slog.Warn("forecast warm refresh failed", "err", err)
		}
	})
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	slog.Info("forecast warmer started", "interval", w.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (w *Warmer) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
