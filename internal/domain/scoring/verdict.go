package scoring

import "github.com/ozzus/trip-weather/internal/domain/models"

func VerdictFor(score int) models.Verdict {
	switch {
	case score >= 90:
		return models.Verdict{Category: models.WeatherClear, Message: "Perfect weather!"}
	case score >= 70:
		return models.Verdict{Category: models.WeatherCloudy, Message: "Nice weather."}
	case score >= 50:
		return models.Verdict{Category: models.WeatherRain, Message: "Decent weather."}
	case score >= 30:
		return models.Verdict{Category: models.WeatherSnow, Message: "Pack an umbrella."}
	default:
		return models.Verdict{Category: models.WeatherSnow, Message: "Indoor activities recommended."}
	}
}
