package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/forecast"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"github.com/ozzus/trip-weather/internal/domain/ports"
	"github.com/ozzus/trip-weather/internal/domain/scoring"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxStops           = 10
	defaultMaxConcurrentStops = 4
)

type Options struct {
	MaxStops           int
	MaxConcurrentStops int
	GeocodeCacheTTL    time.Duration
	ForecastCacheTTL   time.Duration

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

type TripService struct {
	log           *zap.Logger
	geocoder      ports.Geocoder
	forecasts     ports.ForecastSource
	geoCache      ports.GeocodeCache
	forecastCache ports.ForecastCache
	plans         ports.TripPlanRepository
	opts          Options
	tracer        trace.Tracer
}

// NewTripService wires the planner. Caches and plans may be nil: caching is
// then skipped and saving reports ErrStorageDisabled.
func NewTripService(
	log *zap.Logger,
	geocoder ports.Geocoder,
	forecasts ports.ForecastSource,
	geoCache ports.GeocodeCache,
	forecastCache ports.ForecastCache,
	plans ports.TripPlanRepository,
	opts Options,
) *TripService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxStops <= 0 {
		opts.MaxStops = defaultMaxStops
	}
	if opts.MaxConcurrentStops <= 0 {
		opts.MaxConcurrentStops = defaultMaxConcurrentStops
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &TripService{
		log:           log,
		geocoder:      geocoder,
		forecasts:     forecasts,
		geoCache:      geoCache,
		forecastCache: forecastCache,
		plans:         plans,
		opts:          opts,
		tracer:        otel.Tracer("trip-planner/service"),
	}
}

// PlanTrip resolves every stop concurrently and scores the trip. A failing
// stop keeps empty slots and an error message; it never fails the plan.
// Invalid input rejects the whole request before any upstream call.
func (s *TripService) PlanTrip(ctx context.Context, stops []models.StopRequest, save bool) (models.TripPlan, error) {
	const op = "service.PlanTrip"
	ctx, span := s.tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.Int("trip.stops_count", len(stops)),
		attribute.Bool("trip.save", save),
	)

	logger := s.log.With(zap.String("op", op), zap.Int("stops_count", len(stops)))

	if err := s.validateStops(stops); err != nil {
		logger.Warn("invalid trip request", zap.Error(err))
		span.SetStatus(otelcodes.Error, "invalid trip request")
		return models.TripPlan{}, err
	}

	results := make([]models.StopResult, len(stops))
	var g errgroup.Group
	g.SetLimit(s.opts.MaxConcurrentStops)
	for i, stop := range stops {
		g.Go(func() error {
			results[i] = s.resolveStop(ctx, i, stop)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "trip planning interrupted")
		return models.TripPlan{}, fmt.Errorf("%s: %w", op, err)
	}

	tripStops := make([]models.TripStop, len(results))
	for i := range results {
		tripStops[i] = results[i].TripStop
	}

	score := scoring.Score(tripStops)
	for i, v := range score.PerStop {
		results[i].Score = &v
	}

	plan := models.TripPlan{
		ID:        s.opts.NewID(),
		Stops:     results,
		Score:     score,
		CreatedAt: s.opts.Now().UTC(),
	}
	if score.Overall != nil {
		verdict := scoring.VerdictFor(*score.Overall)
		plan.Verdict = &verdict
		span.SetAttributes(attribute.Int("trip.overall_score", *score.Overall))
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("trip.failed_stops", failed))

	if save {
		if s.plans == nil {
			span.SetStatus(otelcodes.Error, "storage disabled")
			return models.TripPlan{}, derr.ErrStorageDisabled
		}
		if err := s.plans.Save(ctx, plan); err != nil {
			logger.Error("failed to save trip plan", zap.String("plan_id", plan.ID), zap.Error(err))
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "failed to save trip plan")
			return models.TripPlan{}, fmt.Errorf("%s: %w", op, err)
		}
		span.AddEvent("trip.plan.saved")
	}

	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("trip planned",
		zap.String("plan_id", plan.ID),
		zap.Int("failed_stops", failed),
		zap.Int("scored_stops", len(score.PerStop)),
	)
	return plan, nil
}

// Forecast resolves a single destination and returns its slots. Unlike
// PlanTrip, upstream failures are returned to the caller.
func (s *TripService) Forecast(ctx context.Context, destination string, rng models.DateRange) ([]models.ForecastSlot, error) {
	const op = "service.Forecast"
	ctx, span := s.tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.destination", destination),
		attribute.String("trip.date_range", rng.String()),
	)

	if err := validateStop(models.StopRequest{Destination: destination, DateRange: rng}); err != nil {
		span.SetStatus(otelcodes.Error, "invalid stop")
		return nil, err
	}

	coords, err := s.geocode(ctx, destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "geocoding failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slots, err := s.fetchSlots(ctx, coords, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "forecast failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("trip.slots_count", len(slots)))
	span.SetStatus(otelcodes.Ok, "ok")
	return slots, nil
}

func (s *TripService) GetTripPlan(ctx context.Context, id string) (models.TripPlan, error) {
	const op = "service.GetTripPlan"
	ctx, span := s.tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("trip.plan_id", id))

	if s.plans == nil || strings.TrimSpace(id) == "" {
		span.SetStatus(otelcodes.Error, "plan not found")
		return models.TripPlan{}, derr.ErrPlanNotFound
	}

	plan, err := s.plans.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if !errors.Is(err, derr.ErrPlanNotFound) {
			s.log.Error("failed to load trip plan", zap.String("op", op), zap.String("plan_id", id), zap.Error(err))
			span.RecordError(err)
		}
		span.SetStatus(otelcodes.Error, "failed to load trip plan")
		return models.TripPlan{}, err
	}

	span.SetStatus(otelcodes.Ok, "ok")
	return plan, nil
}

func (s *TripService) validateStops(stops []models.StopRequest) error {
	if len(stops) == 0 {
		return fmt.Errorf("%w: at least one stop is required", derr.ErrInvalidStop)
	}
	if len(stops) > s.opts.MaxStops {
		return fmt.Errorf("%w: %d stops exceeds the limit of %d", derr.ErrInvalidStop, len(stops), s.opts.MaxStops)
	}
	for i, stop := range stops {
		if err := validateStop(stop); err != nil {
			return fmt.Errorf("stop %d: %w", i+1, err)
		}
	}
	return nil
}

func validateStop(stop models.StopRequest) error {
	if strings.TrimSpace(stop.Destination) == "" {
		return fmt.Errorf("%w: destination is required", derr.ErrInvalidStop)
	}
	return stop.DateRange.Validate()
}

func (s *TripService) resolveStop(ctx context.Context, index int, req models.StopRequest) models.StopResult {
	ctx, span := s.tracer.Start(ctx, "service.resolveStop")
	defer span.End()
	span.SetAttributes(
		attribute.Int("trip.stop_index", index),
		attribute.String("trip.destination", req.Destination),
	)

	result := models.StopResult{
		TripStop: models.TripStop{
			Destination: strings.TrimSpace(req.Destination),
			DateRange:   req.DateRange,
			Slots:       []models.ForecastSlot{},
		},
	}

	logger := s.log.With(
		zap.Int("stop_index", index),
		zap.String("destination", result.Destination),
		zap.String("date_range", req.DateRange.String()),
	)

	coords, err := s.geocode(ctx, result.Destination)
	if err != nil {
		logger.Warn("failed to geocode stop", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "geocoding failed")
		result.Error = stopErrorMessage(err)
		return result
	}
	result.Coordinates = &coords

	slots, err := s.fetchSlots(ctx, coords, req.DateRange)
	if err != nil {
		logger.Warn("failed to fetch forecast for stop", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "forecast failed")
		result.Error = stopErrorMessage(err)
		return result
	}
	result.Slots = slots

	span.SetAttributes(attribute.Int("trip.slots_count", len(slots)))
	logger.Debug("stop resolved", zap.Int("slots_count", len(slots)))
	return result
}

func (s *TripService) geocode(ctx context.Context, place string) (models.Coordinates, error) {
	span := trace.SpanFromContext(ctx)

	if s.geoCache != nil {
		coords, err := s.geoCache.GetCoordinates(ctx, place)
		if err == nil {
			span.AddEvent("geocode.cache.hit")
			return coords, nil
		}
		if errors.Is(err, derr.ErrCacheMiss) {
			span.AddEvent("geocode.cache.miss")
		} else {
			s.log.Warn("geocode cache read failed", zap.String("place", place), zap.Error(err))
			span.RecordError(err)
		}
	}

	coords, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		return models.Coordinates{}, err
	}

	if s.geoCache != nil {
		if err := s.geoCache.SetCoordinates(ctx, place, coords, s.opts.GeocodeCacheTTL); err != nil {
			s.log.Warn("geocode cache write failed", zap.String("place", place), zap.Error(err))
			span.RecordError(err)
		}
	}

	return coords, nil
}

// fetchSlots fetches the raw forecast (through the cache) and filters it to
// the canonical slots of rng in the destination's local time.
func (s *TripService) fetchSlots(ctx context.Context, coords models.Coordinates, rng models.DateRange) ([]models.ForecastSlot, error) {
	span := trace.SpanFromContext(ctx)

	raw, cached := models.RawForecast{}, false
	if s.forecastCache != nil {
		got, err := s.forecastCache.GetForecast(ctx, coords)
		switch {
		case err == nil:
			raw, cached = got, true
			span.AddEvent("forecast.cache.hit")
		case errors.Is(err, derr.ErrCacheMiss):
			span.AddEvent("forecast.cache.miss")
		default:
			s.log.Warn("forecast cache read failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	if !cached {
		fetched, err := s.forecasts.FetchForecast(ctx, coords)
		if err != nil {
			return nil, err
		}
		raw = fetched

		if s.forecastCache != nil {
			if err := s.forecastCache.SetForecast(ctx, coords, raw, s.opts.ForecastCacheTTL); err != nil {
				s.log.Warn("forecast cache write failed", zap.Error(err))
				span.RecordError(err)
			}
		}
	}

	return forecast.FilterSlots(raw.Entries, rng, raw.Location()), nil
}

// stopErrorMessage is the user-facing text attached to a failed stop.
func stopErrorMessage(err error) string {
	switch {
	case errors.Is(err, derr.ErrPlaceNotFound):
		return "destination not found"
	case errors.Is(err, derr.ErrUpstream), errors.Is(err, derr.ErrMalformedResponse):
		return "weather service error: " + err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "weather lookup timed out"
	case errors.Is(err, context.Canceled):
		return "weather lookup canceled"
	default:
		return "failed to resolve destination"
	}
}
