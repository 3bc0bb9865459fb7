package scoring

import (
	"testing"

	"github.com/ozzus/trip-weather/internal/domain/models"
)

func stopWith(categories ...models.WeatherCategory) models.TripStop {
	slots := make([]models.ForecastSlot, 0, len(categories))
	for _, c := range categories {
		slots = append(slots, models.ForecastSlot{TimeOfDay: models.Morning9, Category: c})
	}
	return models.TripStop{Slots: slots}
}

func TestScore_EmptyTripHasNoOverall(t *testing.T) {
	got := Score(nil)
	if got.Overall != nil {
		t.Fatalf("expected absent overall, got %d", *got.Overall)
	}
	if len(got.PerStop) != 0 {
		t.Fatalf("expected no per-stop scores, got %v", got.PerStop)
	}
}

func TestScore_PerStop(t *testing.T) {
	tests := []struct {
		name string
		stop models.TripStop
		want int
	}{
		{name: "clear clear", stop: stopWith(models.WeatherClear, models.WeatherClear), want: 100},
		{name: "clear rain", stop: stopWith(models.WeatherClear, models.WeatherRain), want: 75},
		{name: "clear cloudy rain", stop: stopWith(models.WeatherClear, models.WeatherCloudy, models.WeatherRain), want: 73},
		{name: "snow only", stop: stopWith(models.WeatherSnow), want: 30},
		{name: "cloudy snow rounds half up", stop: stopWith(models.WeatherCloudy, models.WeatherSnow, models.WeatherClear, models.WeatherCloudy), want: 68},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score([]models.TripStop{tc.stop})
			if got.PerStop[0] != tc.want {
				t.Fatalf("per-stop score: got %d want %d", got.PerStop[0], tc.want)
			}
			if got.Overall == nil || *got.Overall != tc.want {
				t.Fatalf("overall score: got %v want %d", got.Overall, tc.want)
			}
		})
	}
}

func TestScore_EmptyStopExcludedFromDenominator(t *testing.T) {
	got := Score([]models.TripStop{stopWith(models.WeatherClear), {}})
	if got.Overall == nil || *got.Overall != 100 {
		t.Fatalf("expected overall 100, got %v", got.Overall)
	}
	if _, ok := got.PerStop[1]; ok {
		t.Fatalf("empty stop must not be scored, got %v", got.PerStop)
	}
}

func TestScore_AllStopsEmpty(t *testing.T) {
	got := Score([]models.TripStop{{}, {}})
	if got.Overall != nil {
		t.Fatalf("expected absent overall, got %d", *got.Overall)
	}
}

func TestScore_OverallAveragesStops(t *testing.T) {
	got := Score([]models.TripStop{
		stopWith(models.WeatherClear, models.WeatherRain), // 75
		{},
		stopWith(models.WeatherSnow), // 30
	})
	if got.Overall == nil || *got.Overall != 53 {
		t.Fatalf("expected overall 53, got %v", got.Overall)
	}
	if got.PerStop[0] != 75 || got.PerStop[2] != 30 {
		t.Fatalf("unexpected per-stop scores: %v", got.PerStop)
	}
}

func TestScore_OverallUsesRoundedStopScores(t *testing.T) {
	got := Score([]models.TripStop{
		stopWith(models.WeatherClear, models.WeatherCloudy, models.WeatherRain),                       // 73.33 -> 73
		stopWith(models.WeatherCloudy, models.WeatherSnow, models.WeatherClear, models.WeatherCloudy), // 67.5 -> 68
	})
	if got.PerStop[0] != 73 || got.PerStop[1] != 68 {
		t.Fatalf("unexpected per-stop scores: %v", got.PerStop)
	}
	// (73 + 68) / 2 = 70.5
	if got.Overall == nil || *got.Overall != 71 {
		t.Fatalf("expected overall 71, got %v", got.Overall)
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	a := stopWith(models.WeatherClear, models.WeatherCloudy)
	b := stopWith(models.WeatherRain, models.WeatherSnow, models.WeatherSnow)

	first := Score([]models.TripStop{a, b})
	second := Score([]models.TripStop{b, a})
	if *first.Overall != *second.Overall {
		t.Fatalf("overall depends on order: %d vs %d", *first.Overall, *second.Overall)
	}
}

func TestStopScore_NoSlots(t *testing.T) {
	if _, ok := StopScore(nil); ok {
		t.Fatal("expected ok=false for a stop without slots")
	}
}
