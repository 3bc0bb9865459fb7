package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ozzus/trip-weather/grpcapp"
	"github.com/ozzus/trip-weather/httpapp"
	"github.com/ozzus/trip-weather/internal/application/service"
	"github.com/ozzus/trip-weather/internal/config"
	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/ports"
	triprepo "github.com/ozzus/trip-weather/internal/infrastructures/db/postgres/repo"
	cacheredis "github.com/ozzus/trip-weather/internal/infrastructures/db/redis"
	"github.com/ozzus/trip-weather/internal/infrastructures/db/tracing"
	"github.com/ozzus/trip-weather/internal/infrastructures/openweather"
	owclient "github.com/ozzus/trip-weather/internal/infrastructures/openweather/http/client"
	grpcapi "github.com/ozzus/trip-weather/internal/transport/grpc"
	"github.com/ozzus/trip-weather/internal/transport/http/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	if cfg.Jaeger.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Options{
			ServiceName: "trip-planner",
			Environment: cfg.Env,
			Collector:   cfg.Jaeger.Address,
			SampleRatio: cfg.Jaeger.SampleRatio,
		})
		if err != nil {
			log.Fatal("failed to init tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Warn("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	log.Info("trip-planner starting",
		zap.String("env", cfg.Env),
		zap.String("http_addr", cfg.HTTP.Address()),
		zap.Int("grpc_port", cfg.GRPC.Port),
	)

	weatherClient, err := owclient.NewClient(
		cfg.OpenWeather.BaseURL,
		cfg.OpenWeather.APIKey,
		cfg.OpenWeather.Units,
		cfg.OpenWeather.Timeout,
		cfg.OpenWeather.RateLimitRPS,
		cfg.OpenWeather.RateLimitBurst,
	)
	if err != nil {
		if errors.Is(err, derr.ErrMisconfigured) {
			log.Fatal("openweathermap is not configured, set OPENWEATHERMAP_API_KEY", zap.Error(err))
		}
		log.Fatal("failed to create openweathermap client", zap.Error(err))
	}
	weatherSource := openweather.NewSource(weatherClient)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client", zap.Error(err))
		}
	}()

	var plans ports.TripPlanRepository
	if cfg.DB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		repo, err := triprepo.New(connectCtx, cfg.DB.DatabaseURL())
		cancel()
		if err != nil {
			log.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer repo.Close()
		plans = repo
	} else {
		log.Info("trip plan storage disabled, db is not configured")
	}

	tripService := service.NewTripService(
		log,
		weatherSource,
		weatherSource,
		cacheredis.NewGeocodeCache(redisClient),
		cacheredis.NewForecastCache(redisClient),
		plans,
		service.Options{
			MaxStops:           cfg.Trip.MaxStops,
			MaxConcurrentStops: cfg.Trip.MaxConcurrentStops,
			GeocodeCacheTTL:    cfg.Trip.GeocodeCacheTTL,
			ForecastCacheTTL:   cfg.Trip.ForecastCacheTTL,
		},
	)

	tripHandler := handlers.NewTripHandler(log, tripService, cfg.HTTP.HandlerTimeout())
	httpApp := httpapp.New(log, cfg.HTTP.Address(), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout, func(mux *http.ServeMux) {
		tripHandler.Register(mux)
	})

	grpcApp := grpcapp.New(log, cfg.GRPC.Host, cfg.GRPC.Port, cfg.GRPC.Timeout, func(s *grpc.Server) {
		grpcapi.Register(s, log, tripService)
	})

	errCh := make(chan error, 2)
	go func() {
		errCh <- httpApp.Run()
	}()
	go func() {
		errCh <- grpcApp.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpApp.Stop(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	grpcApp.Stop()
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
