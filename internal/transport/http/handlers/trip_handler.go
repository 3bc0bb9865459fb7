package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"go.uber.org/zap"
)

type TripPlanner interface {
	PlanTrip(ctx context.Context, stops []models.StopRequest, save bool) (models.TripPlan, error)
	GetTripPlan(ctx context.Context, id string) (models.TripPlan, error)
	Forecast(ctx context.Context, destination string, rng models.DateRange) ([]models.ForecastSlot, error)
}

type TripHandler struct {
	log     *zap.Logger
	planner TripPlanner
	timeout time.Duration
}

func NewTripHandler(log *zap.Logger, planner TripPlanner, timeout time.Duration) *TripHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripHandler{
		log:     log,
		planner: planner,
		timeout: timeout,
	}
}

// Register mounts the trip routes on mux.
func (h *TripHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/trips/weather", h.PlanTrip)
	mux.HandleFunc("GET /v1/trips/{id}", h.GetTripPlan)
	mux.HandleFunc("POST /api/getWeather", h.GetWeather)
}

func (h *TripHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req planTripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}

	stops, err := toStopRequests(req.Stops)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	plan, err := h.planner.PlanTrip(ctx, stops, req.Save)
	if err != nil {
		h.logFailure("plan trip failed", err)
		writeError(w, mapHTTPStatus(err), errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, toTripPlanResponse(plan))
}

func (h *TripHandler) GetTripPlan(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid path, expected /v1/trips/{id}")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	plan, err := h.planner.GetTripPlan(ctx, id)
	if err != nil {
		h.logFailure("get trip plan failed", err)
		writeError(w, mapHTTPStatus(err), errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, toTripPlanResponse(plan))
}

// GetWeather serves the single-stop contract: 400 on missing fields, 404 on
// an unknown city, 500 on anything else.
func (h *TripHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	var req legacyWeatherRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, legacyErrorResponse{Error: "invalid json body"})
		return
	}
	if strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		writeJSON(w, http.StatusBadRequest, legacyErrorResponse{Error: "Missing required fields: city, startDate, endDate"})
		return
	}

	rng, err := models.ParseDateRange(legacyDate(req.StartDate), legacyDate(req.EndDate))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, legacyErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	slots, err := h.planner.Forecast(ctx, req.City, rng)
	if err != nil {
		h.logFailure("legacy weather lookup failed", err)
		if errors.Is(err, derr.ErrPlaceNotFound) {
			writeJSON(w, http.StatusNotFound, legacyErrorResponse{Error: "City not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, legacyErrorResponse{Error: errorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, legacyWeatherResponse{Success: true, Data: toLegacyEntries(slots)})
}

func (h *TripHandler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *TripHandler) logFailure(msg string, err error) {
	if mapHTTPStatus(err) >= http.StatusInternalServerError {
		h.log.Error(msg, zap.Error(err))
		return
	}
	h.log.Info(msg, zap.Error(err))
}

func toStopRequests(in []stopRequest) ([]models.StopRequest, error) {
	stops := make([]models.StopRequest, 0, len(in))
	for i, s := range in {
		rng, err := models.ParseDateRange(s.StartDate, s.EndDate)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i+1, err)
		}
		stops = append(stops, models.StopRequest{Destination: s.Destination, DateRange: rng})
	}
	return stops, nil
}

// legacyDate accepts plain dates as well as full ISO timestamps.
func legacyDate(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > len(models.DateLayout) && v[len(models.DateLayout)] == 'T' {
		return v[:len(models.DateLayout)]
	}
	return v
}
