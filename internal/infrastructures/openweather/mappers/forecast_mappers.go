package mappers

import (
	"github.com/ozzus/trip-weather/internal/domain/models"
	"github.com/ozzus/trip-weather/internal/infrastructures/openweather/dto"
)

func ToRawForecast(items []dto.ForecastItem, city dto.ForecastCity) models.RawForecast {
	entries := make([]models.RawForecastEntry, 0, len(items))
	for _, item := range items {
		category := ""
		if len(item.Weather) > 0 {
			category = item.Weather[0].Main
		}
		entries = append(entries, models.RawForecastEntry{
			Timestamp: item.Dt,
			Category:  category,
		})
	}

	return models.RawForecast{
		Entries:        entries,
		TimezoneOffset: city.Timezone,
	}
}

func ToCoordinates(item dto.GeocodingItem) models.Coordinates {
	return models.Coordinates{Lat: item.Lat, Lon: item.Lon}
}
