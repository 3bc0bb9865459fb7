package openweather

import (
	"context"
	"fmt"
	"strings"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"github.com/ozzus/trip-weather/internal/domain/ports"
	"github.com/ozzus/trip-weather/internal/infrastructures/openweather/http/client"
	"github.com/ozzus/trip-weather/internal/infrastructures/openweather/mappers"
)

type Source struct {
	client *client.Client
}

var (
	_ ports.Geocoder       = (*Source)(nil)
	_ ports.ForecastSource = (*Source)(nil)
)

func NewSource(client *client.Client) *Source {
	return &Source{client: client}
}

func (s *Source) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	items, err := s.client.Geocode(ctx, place)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(items) == 0 {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w", strings.TrimSpace(place), derr.ErrPlaceNotFound)
	}

	return mappers.ToCoordinates(items[0]), nil
}

func (s *Source) FetchForecast(ctx context.Context, coords models.Coordinates) (models.RawForecast, error) {
	resp, err := s.client.GetForecast(ctx, coords.Lat, coords.Lon)
	if err != nil {
		return models.RawForecast{}, fmt.Errorf("fetch forecast: %w", err)
	}

	return mappers.ToRawForecast(*resp.List, resp.City), nil
}
