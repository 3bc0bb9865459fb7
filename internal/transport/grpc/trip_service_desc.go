package grpc

import (
	"context"

	"github.com/ozzus/trip-weather/internal/domain/models"
	"google.golang.org/grpc"
)

const (
	ServiceName           = "tripweather.v1.TripPlannerService"
	planTripFullMethod    = "/" + ServiceName + "/PlanTrip"
	getTripPlanFullMethod = "/" + ServiceName + "/GetTripPlan"
)

type PlanTripRequest struct {
	Stops []*Stop `json:"stops"`
	Save  bool    `json:"save"`
}

type Stop struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type PlanTripResponse struct {
	Plan models.TripPlan `json:"plan"`
}

type GetTripPlanRequest struct {
	ID string `json:"id"`
}

type GetTripPlanResponse struct {
	Plan models.TripPlan `json:"plan"`
}

type TripPlannerServer interface {
	PlanTrip(context.Context, *PlanTripRequest) (*PlanTripResponse, error)
	GetTripPlan(context.Context, *GetTripPlanRequest) (*GetTripPlanResponse, error)
}

func RegisterTripPlannerServer(s grpc.ServiceRegistrar, srv TripPlannerServer) {
	s.RegisterService(&tripPlannerServiceDesc, srv)
}

var tripPlannerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TripPlannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PlanTrip", Handler: planTripHandler},
		{MethodName: "GetTripPlan", Handler: getTripPlanHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tripweather/v1/trip_planner.proto",
}

func planTripHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PlanTripRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TripPlannerServer).PlanTrip(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: planTripFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TripPlannerServer).PlanTrip(ctx, req.(*PlanTripRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getTripPlanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetTripPlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TripPlannerServer).GetTripPlan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getTripPlanFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TripPlannerServer).GetTripPlan(ctx, req.(*GetTripPlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// TripPlannerClient calls the service over any connection using the JSON codec.
type TripPlannerClient struct {
	cc grpc.ClientConnInterface
}

func NewTripPlannerClient(cc grpc.ClientConnInterface) *TripPlannerClient {
	return &TripPlannerClient{cc: cc}
}

func (c *TripPlannerClient) PlanTrip(ctx context.Context, in *PlanTripRequest, opts ...grpc.CallOption) (*PlanTripResponse, error) {
	out := new(PlanTripResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, planTripFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TripPlannerClient) GetTripPlan(ctx context.Context, in *GetTripPlanRequest, opts ...grpc.CallOption) (*GetTripPlanResponse, error) {
	out := new(GetTripPlanResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, getTripPlanFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
