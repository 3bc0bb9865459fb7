package ports

import (
	"context"
	"time"

	"github.com/ozzus/trip-weather/internal/domain/models"
)

type Geocoder interface {
	Geocode(ctx context.Context, place string) (models.Coordinates, error)
}

type ForecastSource interface {
	FetchForecast(ctx context.Context, coords models.Coordinates) (models.RawForecast, error)
}

type GeocodeCache interface {
	GetCoordinates(ctx context.Context, place string) (models.Coordinates, error)
	SetCoordinates(ctx context.Context, place string, coords models.Coordinates, ttl time.Duration) error
}

type ForecastCache interface {
	GetForecast(ctx context.Context, coords models.Coordinates) (models.RawForecast, error)
	SetForecast(ctx context.Context, coords models.Coordinates, forecast models.RawForecast, ttl time.Duration) error
}

type TripPlanRepository interface {
	Save(ctx context.Context, plan models.TripPlan) error
	GetByID(ctx context.Context, id string) (models.TripPlan, error)
}
