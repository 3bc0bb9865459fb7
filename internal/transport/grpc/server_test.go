package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/ozzus/trip-weather/internal/application/service"
	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// 2024-06-02 00:00:00 UTC
const june2 int64 = 1717286400

var paris = models.Coordinates{Lat: 48.8589, Lon: 2.32}

type grpcTestGeocoder struct{}

func (grpcTestGeocoder) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	if place == "Paris" {
		return paris, nil
	}
	return models.Coordinates{}, fmt.Errorf("geocode %q: %w", place, derr.ErrPlaceNotFound)
}

type grpcTestForecasts struct{}

func (grpcTestForecasts) FetchForecast(ctx context.Context, coords models.Coordinates) (models.RawForecast, error) {
	return models.RawForecast{Entries: []models.RawForecastEntry{
		{Timestamp: june2 + 9*3600, Category: "Clear"},
		{Timestamp: june2 + 13*3600, Category: "Clouds"},
		{Timestamp: june2 + 18*3600, Category: "Rain"},
	}}, nil
}

type grpcTestPlans struct {
	plans map[string]models.TripPlan
}

func (r *grpcTestPlans) Save(ctx context.Context, plan models.TripPlan) error {
	r.plans[plan.ID] = plan
	return nil
}

func (r *grpcTestPlans) GetByID(ctx context.Context, id string) (models.TripPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return models.TripPlan{}, derr.ErrPlanNotFound
	}
	return plan, nil
}

func newTestTripService(plans *grpcTestPlans) *service.TripService {
	if plans == nil {
		return service.NewTripService(zap.NewNop(), grpcTestGeocoder{}, grpcTestForecasts{}, nil, nil, nil, service.Options{})
	}
	return service.NewTripService(zap.NewNop(), grpcTestGeocoder{}, grpcTestForecasts{}, nil, nil, plans, service.Options{})
}

func TestPlanTrip_InvalidArguments(t *testing.T) {
	srv := &serverAPI{log: zap.NewNop(), service: newTestTripService(nil)}

	tests := []struct {
		name string
		req  *PlanTripRequest
	}{
		{name: "nil request", req: nil},
		{name: "no stops", req: &PlanTripRequest{}},
		{name: "nil stop", req: &PlanTripRequest{Stops: []*Stop{nil}}},
		{name: "blank destination", req: &PlanTripRequest{Stops: []*Stop{{Destination: " ", StartDate: "2024-06-02", EndDate: "2024-06-02"}}}},
		{name: "reversed range", req: &PlanTripRequest{Stops: []*Stop{{Destination: "Paris", StartDate: "2024-06-03", EndDate: "2024-06-02"}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := srv.PlanTrip(context.Background(), tc.req)
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("unexpected code: got %v want %v", status.Code(err), codes.InvalidArgument)
			}
		})
	}
}

func TestPlanTrip_StorageDisabled(t *testing.T) {
	srv := &serverAPI{log: zap.NewNop(), service: newTestTripService(nil)}

	_, err := srv.PlanTrip(context.Background(), &PlanTripRequest{
		Stops: []*Stop{{Destination: "Paris", StartDate: "2024-06-02", EndDate: "2024-06-02"}},
		Save:  true,
	})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("unexpected code: got %v want %v", status.Code(err), codes.FailedPrecondition)
	}
}

func TestGetTripPlan_MapsNotFound(t *testing.T) {
	srv := &serverAPI{log: zap.NewNop(), service: newTestTripService(&grpcTestPlans{plans: map[string]models.TripPlan{}})}

	_, err := srv.GetTripPlan(context.Background(), &GetTripPlanRequest{ID: "missing"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unexpected code: got %v want %v", status.Code(err), codes.NotFound)
	}

	_, err = srv.GetTripPlan(context.Background(), &GetTripPlanRequest{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("unexpected code: got %v want %v", status.Code(err), codes.InvalidArgument)
	}
}

func TestTripPlannerService_RoundTripOverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	plans := &grpcTestPlans{plans: map[string]models.TripPlan{}}
	Register(s, zap.NewNop(), newTestTripService(plans))
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	client := NewTripPlannerClient(conn)
	ctx := context.Background()

	planned, err := client.PlanTrip(ctx, &PlanTripRequest{
		Stops: []*Stop{
			{Destination: "Paris", StartDate: "2024-06-02", EndDate: "2024-06-02"},
			{Destination: "Atlantis", StartDate: "2024-06-02", EndDate: "2024-06-03"},
		},
		Save: true,
	})
	if err != nil {
		t.Fatalf("PlanTrip: %v", err)
	}
	if planned.Plan.Score.Overall == nil || *planned.Plan.Score.Overall != 73 {
		t.Fatalf("unexpected overall score: %v", planned.Plan.Score.Overall)
	}
	if planned.Plan.Stops[1].Error == "" || len(planned.Plan.Stops[1].Slots) != 0 {
		t.Fatalf("unexpected failed stop: %+v", planned.Plan.Stops[1])
	}
	if planned.Plan.Stops[0].Slots[2].Category != models.WeatherRain {
		t.Fatalf("categories should survive the wire: %+v", planned.Plan.Stops[0].Slots)
	}

	loaded, err := client.GetTripPlan(ctx, &GetTripPlanRequest{ID: planned.Plan.ID})
	if err != nil {
		t.Fatalf("GetTripPlan: %v", err)
	}
	if loaded.Plan.ID != planned.Plan.ID || loaded.Plan.Verdict == nil || loaded.Plan.Verdict.Message != "Nice weather." {
		t.Fatalf("unexpected loaded plan: %+v", loaded.Plan)
	}

	_, err = client.GetTripPlan(ctx, &GetTripPlanRequest{ID: "unknown"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unexpected code over the wire: %v", status.Code(err))
	}
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	if c.Name() != CodecName {
		t.Fatalf("unexpected codec name: %q", c.Name())
	}

	data, err := c.Marshal(&GetTripPlanRequest{ID: "abc"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out GetTripPlanRequest
	if err := c.Unmarshal(data, &out); err != nil || out.ID != "abc" {
		t.Fatalf("unmarshal: %v %+v", err, out)
	}
	if err := c.Unmarshal(nil, &out); err != nil {
		t.Fatalf("empty payload should decode to zero value: %v", err)
	}
}
