package refresher

import (
	"context"
	"log/slog"
	"time"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/robfig/cron/v3"
)

// FavoriteLister yields the distinct city names users have favourited.
type FavoriteLister interface {
	ListFavoriteNames(ctx context.Context) ([]string, error)
}

// Fetcher warms one city. Satisfied by WeatherUsecase.GetWeather.
type Fetcher interface {
	GetWeather(ctx context.Context, city string) (*domain.WeatherSnapshot, error)
}

// Refresher periodically re-fetches weather for favourited cities so their
// snapshots are already cached when the dashboard asks for them.
type Refresher struct {
	cities  FavoriteLister
	weather Fetcher
	sched   cron.Schedule
	logger  *slog.Logger
}

// New parses cronExpr in the standard five-field format.
func New(cities FavoriteLister, weather Fetcher, cronExpr string, logger *slog.Logger) (*Refresher, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Refresher{
		cities:  cities,
		weather: weather,
		sched:   sched,
		logger:  logger.With("component", "refresher"),
	}, nil
}

// Start blocks until ctx is cancelled, running one refresh per schedule tick.
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("refresher started")

	for {
		next := r.sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("refresher shut down")
			return
		case <-timer.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	names, err := r.cities.ListFavoriteNames(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "list favorite cities", "error", err)
		return
	}

	warmed := 0
	for _, name := range names {
		if _, err := r.weather.GetWeather(ctx, name); err != nil {
			// Unknown or temporarily unresolvable cities are skipped, not fatal.
			r.logger.WarnContext(ctx, "warm city", "city", name, "error", err)
			continue
		}
		warmed++
	}
	if warmed > 0 {
		r.logger.InfoContext(ctx, "warmed favorite cities", "count", warmed)
	}
}
