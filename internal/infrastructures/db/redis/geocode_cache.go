package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

type GeocodeCache struct {
	redis *redis.Client
}

func NewGeocodeCache(redisClient *redis.Client) *GeocodeCache {
	return &GeocodeCache{redis: redisClient}
}

func (c *GeocodeCache) GetCoordinates(ctx context.Context, place string) (models.Coordinates, error) {
	data, err := c.redis.Get(ctx, geocodeKey(place)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Coordinates{}, derr.ErrCacheMiss
		}
		return models.Coordinates{}, fmt.Errorf("redis get coordinates: %w", err)
	}

	var coords models.Coordinates
	if err := json.Unmarshal([]byte(data), &coords); err != nil {
		return models.Coordinates{}, fmt.Errorf("unmarshal cached coordinates: %w", err)
	}

	return coords, nil
}

func (c *GeocodeCache) SetCoordinates(ctx context.Context, place string, coords models.Coordinates, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("marshal coordinates for cache: %w", err)
	}

	if err := c.redis.Set(ctx, geocodeKey(place), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set coordinates: %w", err)
	}

	return nil
}

func geocodeKey(place string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(place)), " ")
	return "geocode:" + normalized
}
