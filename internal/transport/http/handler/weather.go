package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

type weatherUsecaser interface {
	GetWeather(ctx context.Context, city string) (*domain.WeatherSnapshot, error)
	GetInsight(ctx context.Context, city string) (string, error)
}

type WeatherHandler struct {
	weatherUsecase weatherUsecaser
	logger         *slog.Logger
}

func NewWeatherHandler(weatherUsecase weatherUsecaser, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{weatherUsecase: weatherUsecase, logger: logger.With("component", "weather_handler")}
}

type weatherResponse struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Weather     string  `json:"weather"`
	Humidity    int     `json:"humidity"`
}

// GET /weather/:city
func (h *WeatherHandler) Current(c *gin.Context) {
	city := c.Param("city")

	snap, err := h.weatherUsecase.GetWeather(c.Request.Context(), city)
	if err != nil {
		h.respondUpstreamError(c, city, err)
		return
	}

	c.JSON(http.StatusOK, weatherResponse{
		City:        snap.City,
		Temperature: snap.Temperature,
		Weather:     snap.Condition,
		Humidity:    snap.Humidity,
	})
}

// GET /ai-insight/:city
func (h *WeatherHandler) Insight(c *gin.Context) {
	city := c.Param("city")

	insight, err := h.weatherUsecase.GetInsight(c.Request.Context(), city)
	if err != nil {
		h.respondUpstreamError(c, city, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// respondUpstreamError keeps the two upstream failure causes apart: a city
// the provider doesn't know is the caller's problem, an unreachable provider
// is ours.
func (h *WeatherHandler) respondUpstreamError(c *gin.Context, city string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownCity):
		c.JSON(http.StatusNotFound, gin.H{"message": errUnknownCity})
	case errors.Is(err, domain.ErrProviderUnavailable):
		h.logger.Error("weather provider", "city", city, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": errProviderUnavailable})
	default:
		h.logger.Error("weather", "city", city, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}
