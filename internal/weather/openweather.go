package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/metrics"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current conditions from an OpenWeatherMap-compatible API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// currentResponse mirrors the subset of the provider payload we consume.
type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Fetch returns the current weather for city, requested in metric units.
// A provider 404 maps to domain.ErrUnknownCity; any other failure maps to
// domain.ErrProviderUnavailable so callers can tell the two apart.
func (c *Client) Fetch(ctx context.Context, city string) (*domain.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	apiURL := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ProviderRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.ProviderRequestsTotal.WithLabelValues("unknown_city").Inc()
		return nil, domain.ErrUnknownCity
	case resp.StatusCode != http.StatusOK:
		metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: provider status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("ok").Inc()

	var data currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrProviderUnavailable, err)
	}

	snapshot := &domain.WeatherSnapshot{
		City:        data.Name,
		Temperature: data.Main.Temp,
		Humidity:    data.Main.Humidity,
	}
	if len(data.Weather) > 0 {
		snapshot.Condition = data.Weather[0].Description
	}
	return snapshot, nil
}
