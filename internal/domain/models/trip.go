package models

import (
	"fmt"
	"strings"
	"time"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
)

const DateLayout = "2006-01-02"

// Day truncates t to its calendar date as seen in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) DateRange {
	r := DateRange{}
	if !start.IsZero() {
		r.Start = Day(start)
	}
	if !end.IsZero() {
		r.End = Day(end)
	}
	return r
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start date %q", derr.ErrInvalidDateRange, start)
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end date %q", derr.ErrInvalidDateRange, end)
	}

	r := NewDateRange(s, e)
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

func (r DateRange) Validate() error {
	if !r.Complete() {
		return fmt.Errorf("%w: both start and end are required", derr.ErrInvalidDateRange)
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s is after end %s", derr.ErrInvalidDateRange,
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether the calendar date of t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

type StopRequest struct {
	Destination string
	DateRange   DateRange
}

type TripStop struct {
	Destination string         `json:"destination"`
	DateRange   DateRange      `json:"date_range"`
	Slots       []ForecastSlot `json:"slots"`
}

// StopResult is a resolved stop. Error is set when geocoding or the
// forecast fetch failed; Slots then stays empty.
type StopResult struct {
	TripStop
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Score       *int         `json:"score,omitempty"`
	Error       string       `json:"error,omitempty"`
}

type TripScore struct {
	PerStop map[int]int `json:"per_stop"`
	Overall *int        `json:"overall,omitempty"`
}

type Verdict struct {
	Category WeatherCategory `json:"category"`
	Message  string          `json:"message"`
}

type TripPlan struct {
	ID        string       `json:"id,omitempty"`
	Stops     []StopResult `json:"stops"`
	Score     TripScore    `json:"score"`
	Verdict   *Verdict     `json:"verdict,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
