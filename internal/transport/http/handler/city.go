package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dkurganov/weather-tracker/internal/domain"
	"github.com/dkurganov/weather-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type cityUsecaser interface {
	AddCity(ctx context.Context, ownerID, rawName string) (*domain.City, error)
	ListCities(ctx context.Context, ownerID string) ([]*domain.City, error)
	ToggleFavorite(ctx context.Context, ownerID, cityID string) (*domain.City, error)
	RemoveCity(ctx context.Context, ownerID, cityID string) error
}

type CityHandler struct {
	cityUsecase cityUsecaser
	logger      *slog.Logger
}

func NewCityHandler(cityUsecase cityUsecaser, logger *slog.Logger) *CityHandler {
	return &CityHandler{cityUsecase: cityUsecase, logger: logger.With("component", "city_handler")}
}

type addCityRequest struct {
	CityName string `json:"cityName" binding:"required"`
}

type cityResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toCityResponse(c *domain.City) cityResponse {
	return cityResponse{
		ID:         c.ID,
		Name:       c.Name,
		IsFavorite: c.IsFavorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// POST /cities
func (h *CityHandler) Add(c *gin.Context) {
	var req addCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	city, err := h.cityUsecase.AddCity(c.Request.Context(), c.GetString(middleware.UserIDKey), req.CityName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCityNameEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"message": errCityNameRequired})
		case errors.Is(err, domain.ErrCityExists):
			c.JSON(http.StatusConflict, gin.H{"message": errCityExists})
		default:
			h.logger.Error("add city", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, toCityResponse(city))
}

// GET /cities
func (h *CityHandler) List(c *gin.Context) {
	cities, err := h.cityUsecase.ListCities(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		h.logger.Error("list cities", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	out := make([]cityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, toCityResponse(city))
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /cities/:id/favorite
func (h *CityHandler) ToggleFavorite(c *gin.Context) {
	cityID := c.Param("id")
	if _, err := uuid.Parse(cityID); err != nil {
		// A malformed id can't match any city; same outcome as absent.
		c.JSON(http.StatusNotFound, gin.H{"message": errCityNotFound})
		return
	}

	city, err := h.cityUsecase.ToggleFavorite(c.Request.Context(), c.GetString(middleware.UserIDKey), cityID)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errCityNotFound})
			return
		}
		h.logger.Error("toggle favorite", "city_id", cityID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toCityResponse(city))
}

// DELETE /cities/:id
func (h *CityHandler) Remove(c *gin.Context) {
	cityID := c.Param("id")
	if _, err := uuid.Parse(cityID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": errCityNotFound})
		return
	}

	err := h.cityUsecase.RemoveCity(c.Request.Context(), c.GetString(middleware.UserIDKey), cityID)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errCityNotFound})
			return
		}
		h.logger.Error("remove city", "city_id", cityID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City deleted successfully"})
}
