package scoring

import (
	"math"

	"github.com/ozzus/trip-weather/internal/domain/models"
)

// StopScore returns the rounded mean of slot points. ok is false for a stop
// without slots, which must not be scored at all.
func StopScore(slots []models.ForecastSlot) (score int, ok bool) {
	mean, ok := stopMean(slots)
	if !ok {
		return 0, false
	}
	return round(mean), true
}

// Score aggregates per-stop scores and the overall trip score, the rounded
// mean of the rounded per-stop scores. Stops without slots are left out of
// PerStop and of the overall denominator; Overall is nil when no stop has slots.
func Score(stops []models.TripStop) models.TripScore {
	result := models.TripScore{PerStop: make(map[int]int, len(stops))}

	total, scored := 0, 0
	for i, stop := range stops {
		score, ok := StopScore(stop.Slots)
		if !ok {
			continue
		}
		result.PerStop[i] = score
		total += score
		scored++
	}

	if scored > 0 {
		overall := round(float64(total) / float64(scored))
		result.Overall = &overall
	}

	return result
}

func stopMean(slots []models.ForecastSlot) (float64, bool) {
	if len(slots) == 0 {
		return 0, false
	}

	sum := 0
	for _, slot := range slots {
		sum += slot.Category.Points()
	}
	return float64(sum) / float64(len(slots)), true
}

// round is half away from zero.
func round(v float64) int {
	return int(math.Round(v))
}
