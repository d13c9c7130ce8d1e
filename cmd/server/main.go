package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharmasatrya/tripranker/internal/config"
	"github.com/dharmasatrya/tripranker/internal/handler"
	"github.com/dharmasatrya/tripranker/internal/logging"
	"github.com/dharmasatrya/tripranker/internal/ratelimit"
	"github.com/dharmasatrya/tripranker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load config")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(requestLogger())

	if cfg.RateLimit.Enabled {
		e.Use(ratelimit.NewClientLimiter(cfg.RateLimit).Middleware())
		logging.Info().
			Float64("rps", cfg.RateLimit.RequestsPerSecond).
			Int("burst", cfg.RateLimit.Burst).
			Msg("Per-client rate limiting enabled")
	}

	var profiles store.ProfileStore
	if cfg.Redis.Enabled {
		redisStore, err := store.NewRedisStore(cfg.Redis)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		profiles = redisStore
		logging.Info().Str("addr", cfg.Redis.Addr()).Msg("Redis preference store enabled")
	} else {
		profiles = store.NewNoOpStore()
		logging.Info().Msg("Preference store disabled, unknown users get the default profile")
	}
	defer profiles.Close()

	rankHandler := handler.NewRankHandler(profiles, cfg.Ranking.Workers)

	api := e.Group("/api/v1")
	api.POST("/flights/rank", rankHandler.RankFlights)
	api.POST("/hotels/rank", rankHandler.RankHotels)
	api.GET("/preferences/defaults", handler.DefaultPreferences)
	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		logging.Info().Str("addr", addr).Msg("Starting trip ranker server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}

func requestLogger() echo.MiddlewareFunc {
	log := logging.With().Str("component", "http").Logger()

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
