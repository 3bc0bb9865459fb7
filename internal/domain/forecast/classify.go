package forecast

import "github.com/ozzus/trip-weather/internal/domain/models"

// Classify maps a provider "main" weather group to a canonical category.
// Anything but Clear, Clouds, Rain and Snow falls back to Cloudy.
func Classify(providerCategory string) models.WeatherCategory {
	switch providerCategory {
	case "Clear":
		return models.WeatherClear
	case "Clouds":
		return models.WeatherCloudy
	case "Rain":
		return models.WeatherRain
	case "Snow":
		return models.WeatherSnow
	default:
		return models.WeatherCloudy
	}
}

// Reclassify is the identity on canonical categories, so classifying an
// already classified slot changes nothing. An unset category gets the same
// Cloudy default as Classify.
func Reclassify(c models.WeatherCategory) models.WeatherCategory {
	switch c {
	case models.WeatherClear, models.WeatherCloudy, models.WeatherRain, models.WeatherSnow:
		return c
	default:
		return models.WeatherCloudy
	}
}
