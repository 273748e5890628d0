package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkurganov/weather-tracker/config"
	"github.com/dkurganov/weather-tracker/internal/email"
	"github.com/dkurganov/weather-tracker/internal/health"
	"github.com/dkurganov/weather-tracker/internal/infrastructure/postgres"
	ctxlog "github.com/dkurganov/weather-tracker/internal/log"
	"github.com/dkurganov/weather-tracker/internal/metrics"
	"github.com/dkurganov/weather-tracker/internal/refresher"
	httptransport "github.com/dkurganov/weather-tracker/internal/transport/http"
	"github.com/dkurganov/weather-tracker/internal/transport/http/handler"
	"github.com/dkurganov/weather-tracker/internal/usecase"
	"github.com/dkurganov/weather-tracker/internal/weather"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, emailSender, logger, []byte(cfg.JWTSecret), cfg.BcryptCost)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Cities
	cityRepo := postgres.NewCityRepository(pool)
	cityUsecase := usecase.NewCityUsecase(cityRepo)
	cityHandler := handler.NewCityHandler(cityUsecase, logger)

	// Weather
	provider := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey)
	weatherUsecase := usecase.NewWeatherUsecase(provider, time.Duration(cfg.WeatherCacheTTLSec)*time.Second)
	weatherHandler := handler.NewWeatherHandler(weatherUsecase, logger)

	warmer, err := refresher.New(cityRepo, weatherUsecase, cfg.RefreshCron, logger)
	if err != nil {
		stop()
		log.Fatalf("refresher cron: %v", err)
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, cityHandler, weatherHandler, []byte(cfg.JWTSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go warmer.Start(ctx)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
