package forecast

import (
	"time"

	"github.com/ozzus/trip-weather/internal/domain/models"
)

// FilterSlots keeps the entries that fall on a date inside rng and exactly on
// one of the canonical report hours, evaluated in loc. Input order is kept.
func FilterSlots(entries []models.RawForecastEntry, rng models.DateRange, loc *time.Location) []models.ForecastSlot {
	if loc == nil {
		loc = time.UTC
	}

	slots := make([]models.ForecastSlot, 0, len(entries))
	for _, entry := range entries {
		local := time.Unix(entry.Timestamp, 0).In(loc)
		if !rng.Contains(local) {
			continue
		}

		tod, ok := models.TimeOfDayFromHour(local.Hour())
		if !ok {
			continue
		}

		slots = append(slots, models.ForecastSlot{
			Date:      models.Day(local),
			TimeOfDay: tod,
			Category:  Classify(entry.Category),
		})
	}

	return slots
}

type DaySlots struct {
	Date  time.Time
	Slots []models.ForecastSlot
}

// GroupByDate buckets slots by calendar date. Groups keep first-seen order.
func GroupByDate(slots []models.ForecastSlot) []DaySlots {
	groups := make([]DaySlots, 0)
	index := make(map[time.Time]int)
	for _, slot := range slots {
		i, ok := index[slot.Date]
		if !ok {
			i = len(groups)
			index[slot.Date] = i
			groups = append(groups, DaySlots{Date: slot.Date})
		}
		groups[i].Slots = append(groups[i].Slots, slot)
	}
	return groups
}
