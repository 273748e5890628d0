package httptransport

import (
	"log/slog"

	"github.com/dkurganov/weather-tracker/internal/transport/http/handler"
	"github.com/dkurganov/weather-tracker/internal/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, cityHandler *handler.CityHandler, weatherHandler *handler.WeatherHandler, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(cors.Default())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	authMW := middleware.Auth(jwtKey)

	// Protected city routes
	cities := r.Group("/cities", authMW)
	cities.POST("", cityHandler.Add)
	cities.GET("", cityHandler.List)
	cities.PATCH("/:id/favorite", cityHandler.ToggleFavorite)
	cities.DELETE("/:id", cityHandler.Remove)

	// Protected weather routes
	r.GET("/weather/:city", authMW, weatherHandler.Current)
	r.GET("/ai-insight/:city", authMW, weatherHandler.Insight)

	return r
}
