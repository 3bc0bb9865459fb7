package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

type ForecastCache struct {
	redis *redis.Client
}

func NewForecastCache(redisClient *redis.Client) *ForecastCache {
	return &ForecastCache{redis: redisClient}
}

func (c *ForecastCache) GetForecast(ctx context.Context, coords models.Coordinates) (models.RawForecast, error) {
	data, err := c.redis.Get(ctx, forecastKey(coords)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.RawForecast{}, derr.ErrCacheMiss
		}
		return models.RawForecast{}, fmt.Errorf("redis get forecast: %w", err)
	}

	var forecast models.RawForecast
	if err := json.Unmarshal([]byte(data), &forecast); err != nil {
		return models.RawForecast{}, fmt.Errorf("unmarshal cached forecast: %w", err)
	}

	return forecast, nil
}

func (c *ForecastCache) SetForecast(ctx context.Context, coords models.Coordinates, forecast models.RawForecast, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("marshal forecast for cache: %w", err)
	}

	if err := c.redis.Set(ctx, forecastKey(coords), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set forecast: %w", err)
	}

	return nil
}

// forecastKey rounds to two decimals (about 1 km) so nearby lookups share an entry.
func forecastKey(coords models.Coordinates) string {
	return fmt.Sprintf("forecast:%.2f:%.2f", coords.Lat, coords.Lon)
}
