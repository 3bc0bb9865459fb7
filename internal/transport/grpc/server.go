package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/ozzus/trip-weather/internal/application/service"
	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type serverAPI struct {
	log     *zap.Logger
	service *service.TripService
}

func Register(gRPCServer *grpc.Server, log *zap.Logger, tripService *service.TripService) {
	RegisterTripPlannerServer(gRPCServer, &serverAPI{
		log:     log,
		service: tripService,
	})
}

func (s *serverAPI) PlanTrip(ctx context.Context, req *PlanTripRequest) (*PlanTripResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if len(req.Stops) == 0 {
		return nil, status.Error(codes.InvalidArgument, "stops must not be empty")
	}

	stops := make([]models.StopRequest, 0, len(req.Stops))
	for i, stop := range req.Stops {
		if stop == nil {
			return nil, status.Errorf(codes.InvalidArgument, "stops[%d] is required", i)
		}
		if strings.TrimSpace(stop.Destination) == "" {
			return nil, status.Errorf(codes.InvalidArgument, "stops[%d].destination is required", i)
		}
		rng, err := models.ParseDateRange(stop.StartDate, stop.EndDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "stops[%d]: %v", i, err)
		}
		stops = append(stops, models.StopRequest{Destination: stop.Destination, DateRange: rng})
	}

	plan, err := s.service.PlanTrip(ctx, stops, req.Save)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &PlanTripResponse{Plan: plan}, nil
}

func (s *serverAPI) GetTripPlan(ctx context.Context, req *GetTripPlanRequest) (*GetTripPlanResponse, error) {
	if req == nil || strings.TrimSpace(req.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	plan, err := s.service.GetTripPlan(ctx, req.ID)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &GetTripPlanResponse{Plan: plan}, nil
}

func (s *serverAPI) mapError(err error) error {
	switch {
	case errors.Is(err, derr.ErrInvalidStop), errors.Is(err, derr.ErrInvalidDateRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, derr.ErrPlanNotFound):
		return status.Error(codes.NotFound, "trip plan not found")
	case errors.Is(err, derr.ErrStorageDisabled):
		return status.Error(codes.FailedPrecondition, "trip plan storage is disabled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		if s.log != nil {
			s.log.Error("trip planner internal error", zap.Error(err))
		}
		return status.Error(codes.Internal, "internal error")
	}
}
