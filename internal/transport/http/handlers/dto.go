package handlers

import (
	"time"

	"github.com/ozzus/trip-weather/internal/domain/forecast"
	"github.com/ozzus/trip-weather/internal/domain/models"
)

type planTripRequest struct {
	Stops []stopRequest `json:"stops"`
	Save  bool          `json:"save"`
}

type stopRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type tripPlanResponse struct {
	ID           string           `json:"id"`
	Stops        []stopResponse   `json:"stops"`
	OverallScore *int             `json:"overall_score"`
	Verdict      *verdictResponse `json:"verdict,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type stopResponse struct {
	Destination string              `json:"destination"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Coordinates *models.Coordinates `json:"coordinates,omitempty"`
	Score       *int                `json:"score"`
	Error       string              `json:"error,omitempty"`
	Days        []dayResponse       `json:"days"`
}

type dayResponse struct {
	Date  string         `json:"date"`
	Slots []slotResponse `json:"slots"`
}

type slotResponse struct {
	Time    string `json:"time"`
	Weather string `json:"weather"`
	Points  int    `json:"points"`
}

type verdictResponse struct {
	Weather string `json:"weather"`
	Message string `json:"message"`
}

func toTripPlanResponse(plan models.TripPlan) tripPlanResponse {
	resp := tripPlanResponse{
		ID:           plan.ID,
		Stops:        make([]stopResponse, 0, len(plan.Stops)),
		OverallScore: plan.Score.Overall,
		CreatedAt:    plan.CreatedAt,
	}
	if plan.Verdict != nil {
		resp.Verdict = &verdictResponse{
			Weather: plan.Verdict.Category.String(),
			Message: plan.Verdict.Message,
		}
	}

	for _, stop := range plan.Stops {
		resp.Stops = append(resp.Stops, stopResponse{
			Destination: stop.Destination,
			StartDate:   stop.DateRange.Start.Format(models.DateLayout),
			EndDate:     stop.DateRange.End.Format(models.DateLayout),
			Coordinates: stop.Coordinates,
			Score:       stop.Score,
			Error:       stop.Error,
			Days:        toDayResponses(stop.Slots),
		})
	}

	return resp
}

func toDayResponses(slots []models.ForecastSlot) []dayResponse {
	groups := forecast.GroupByDate(slots)
	days := make([]dayResponse, 0, len(groups))
	for _, g := range groups {
		day := dayResponse{
			Date:  g.Date.Format(models.DateLayout),
			Slots: make([]slotResponse, 0, len(g.Slots)),
		}
		for _, slot := range g.Slots {
			day.Slots = append(day.Slots, slotResponse{
				Time:    slot.TimeOfDay.String(),
				Weather: slot.Category.String(),
				Points:  slot.Category.Points(),
			})
		}
		days = append(days, day)
	}
	return days
}

type legacyWeatherRequest struct {
	City      string `json:"city"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type legacyWeatherEntry struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Weather string `json:"weather"`
}

type legacyWeatherResponse struct {
	Success bool                 `json:"success"`
	Data    []legacyWeatherEntry `json:"data"`
}

type legacyErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// toLegacyEntries uses the labels existing getWeather clients score by.
// The result is never nil so "data" is always an array.
func toLegacyEntries(slots []models.ForecastSlot) []legacyWeatherEntry {
	entries := make([]legacyWeatherEntry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, legacyWeatherEntry{
			Date:    slot.Date.Format(models.DateLayout),
			Time:    legacyTimeLabel(slot.TimeOfDay),
			Weather: legacyWeatherLabel(slot.Category),
		})
	}
	return entries
}

func legacyTimeLabel(t models.TimeOfDay) string {
	switch t {
	case models.Morning9:
		return "오전 9시"
	case models.Afternoon1:
		return "오후 1시"
	case models.Evening6:
		return "오후 6시"
	default:
		return t.String()
	}
}

func legacyWeatherLabel(c models.WeatherCategory) string {
	switch c {
	case models.WeatherClear:
		return "맑음"
	case models.WeatherRain:
		return "비"
	case models.WeatherSnow:
		return "눈"
	default:
		return "흐림"
	}
}
