package forecast

import (
	"testing"
	"time"

	"github.com/ozzus/trip-weather/internal/domain/models"
)

func unixAt(loc *time.Location, year int, month time.Month, day, hour int) int64 {
	return time.Date(year, month, day, hour, 0, 0, 0, loc).Unix()
}

func mustRange(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	r, err := models.ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	return r
}

func TestFilterSlots_ParisScenario(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	entries := []models.RawForecastEntry{
		{Timestamp: unixAt(paris, 2024, 6, 2, 9), Category: "Clear"},
		{Timestamp: unixAt(paris, 2024, 6, 2, 13), Category: "Clouds"},
		{Timestamp: unixAt(paris, 2024, 6, 2, 18), Category: "Rain"},
	}

	got := FilterSlots(entries, mustRange(t, "2024-06-01", "2024-06-03"), paris)
	if len(got) != 3 {
		t.Fatalf("expected 3 slots, got %d: %+v", len(got), got)
	}

	wantDate := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	want := []models.ForecastSlot{
		{Date: wantDate, TimeOfDay: models.Morning9, Category: models.WeatherClear},
		{Date: wantDate, TimeOfDay: models.Afternoon1, Category: models.WeatherCloudy},
		{Date: wantDate, TimeOfDay: models.Evening6, Category: models.WeatherRain},
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date) || got[i].TimeOfDay != want[i].TimeOfDay || got[i].Category != want[i].Category {
			t.Fatalf("slot %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestFilterSlots_DropsNonCanonicalHours(t *testing.T) {
	entries := make([]models.RawForecastEntry, 0, 24)
	for hour := 0; hour < 24; hour++ {
		entries = append(entries, models.RawForecastEntry{
			Timestamp: unixAt(time.UTC, 2024, 6, 2, hour),
			Category:  "Clear",
		})
	}

	got := FilterSlots(entries, mustRange(t, "2024-06-02", "2024-06-02"), time.UTC)
	if len(got) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got))
	}
	wantTimes := []models.TimeOfDay{models.Morning9, models.Afternoon1, models.Evening6}
	for i, tod := range wantTimes {
		if got[i].TimeOfDay != tod {
			t.Fatalf("slot %d: got %v want %v", i, got[i].TimeOfDay, tod)
		}
	}
}

func TestFilterSlots_DropsEntriesOutsideRange(t *testing.T) {
	entries := []models.RawForecastEntry{
		{Timestamp: unixAt(time.UTC, 2024, 5, 31, 18), Category: "Snow"},
		{Timestamp: unixAt(time.UTC, 2024, 6, 1, 9), Category: "Clear"},
		{Timestamp: unixAt(time.UTC, 2024, 6, 3, 18), Category: "Rain"},
		{Timestamp: unixAt(time.UTC, 2024, 6, 4, 9), Category: "Snow"},
	}

	got := FilterSlots(entries, mustRange(t, "2024-06-01", "2024-06-03"), time.UTC)
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %d: %+v", len(got), got)
	}
	if got[0].Category != models.WeatherClear || got[1].Category != models.WeatherRain {
		t.Fatalf("unexpected slots: %+v", got)
	}
}

func TestFilterSlots_UsesLocationForHourAndDate(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	// 2024-06-02 00:00 UTC is 09:00 in Seoul; 2024-06-01 21:00 UTC is 06:00 on the 2nd.
	entries := []models.RawForecastEntry{
		{Timestamp: unixAt(time.UTC, 2024, 6, 1, 21), Category: "Clear"},
		{Timestamp: unixAt(time.UTC, 2024, 6, 2, 0), Category: "Rain"},
	}

	got := FilterSlots(entries, mustRange(t, "2024-06-02", "2024-06-02"), seoul)
	if len(got) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(got))
	}
	if got[0].TimeOfDay != models.Morning9 || got[0].Category != models.WeatherRain {
		t.Fatalf("unexpected slot: %+v", got[0])
	}
	if !got[0].Date.Equal(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %s", got[0].Date)
	}
}

func TestFilterSlots_WindowShorterThanRange(t *testing.T) {
	got := FilterSlots(nil, mustRange(t, "2030-01-01", "2030-01-10"), time.UTC)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no slots, got %d", len(got))
	}
}

func TestFilterSlots_ReclassificationIsNoop(t *testing.T) {
	entries := []models.RawForecastEntry{
		{Timestamp: unixAt(time.UTC, 2024, 6, 2, 9), Category: "Clouds"},
		{Timestamp: unixAt(time.UTC, 2024, 6, 2, 13), Category: "Drizzle"},
		{Timestamp: unixAt(time.UTC, 2024, 6, 2, 18), Category: "Snow"},
	}
	rng := mustRange(t, "2024-06-02", "2024-06-02")

	first := FilterSlots(entries, rng, time.UTC)
	for i, slot := range first {
		if again := Reclassify(slot.Category); again != slot.Category {
			t.Fatalf("slot %d: reclassified %v as %v", i, slot.Category, again)
		}
	}
}

func TestGroupByDate_KeepsFirstSeenOrder(t *testing.T) {
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	slots := []models.ForecastSlot{
		{Date: d1, TimeOfDay: models.Morning9, Category: models.WeatherClear},
		{Date: d1, TimeOfDay: models.Evening6, Category: models.WeatherRain},
		{Date: d2, TimeOfDay: models.Morning9, Category: models.WeatherSnow},
	}

	groups := GroupByDate(slots)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !groups[0].Date.Equal(d1) || len(groups[0].Slots) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if !groups[1].Date.Equal(d2) || len(groups[1].Slots) != 1 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}
