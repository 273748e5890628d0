package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/metrics"
	"github.com/patrickmn/go-cache"
)

// Provider abstracts the upstream weather API.
type Provider interface {
	Fetch(ctx context.Context, city string) (*domain.WeatherSnapshot, error)
}

// WeatherUsecase reads provider snapshots through a short-lived in-process
// cache, so the weather and insight endpoints for the same city share one
// upstream round-trip instead of two.
type WeatherUsecase struct {
	provider Provider
	cache    *cache.Cache
}

func NewWeatherUsecase(provider Provider, ttl time.Duration) *WeatherUsecase {
	return &WeatherUsecase{
		provider: provider,
		cache:    cache.New(ttl, 2*ttl),
	}
}

func (u *WeatherUsecase) GetWeather(ctx context.Context, city string) (*domain.WeatherSnapshot, error) {
	return u.snapshot(ctx, city)
}

// GetInsight derives the templated text from the same snapshot GetWeather
// serves. The city as the caller wrote it appears in the text, matching the
// provider-independent phrasing of the templates.
func (u *WeatherUsecase) GetInsight(ctx context.Context, city string) (string, error) {
	snap, err := u.snapshot(ctx, city)
	if err != nil {
		return "", err
	}
	return snap.Insight(city), nil
}

func (u *WeatherUsecase) snapshot(ctx context.Context, city string) (*domain.WeatherSnapshot, error) {
	key := strings.ToLower(city)
	if cached, found := u.cache.Get(key); found {
		metrics.WeatherCacheHits.Inc()
		return cached.(*domain.WeatherSnapshot), nil
	}
	metrics.WeatherCacheMisses.Inc()

	snap, err := u.provider.Fetch(ctx, city)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, snap, cache.DefaultExpiration)
	return snap, nil
}
