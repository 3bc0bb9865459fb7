package models

import (
	"fmt"
	"time"
)

type WeatherCategory uint8

const (
	WeatherUnspecified WeatherCategory = iota
	WeatherClear
	WeatherCloudy
	WeatherRain
	WeatherSnow
)

// Points is the fixed favorability weight of the category.
func (c WeatherCategory) Points() int {
	switch c {
	case WeatherClear:
		return 100
	case WeatherCloudy:
		return 70
	case WeatherRain:
		return 50
	case WeatherSnow:
		return 30
	default:
		return 0
	}
}

func (c WeatherCategory) String() string {
	switch c {
	case WeatherClear:
		return "clear"
	case WeatherCloudy:
		return "cloudy"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	default:
		return "unspecified"
	}
}

// ParseWeatherCategory accepts the canonical names produced by String.
func ParseWeatherCategory(name string) (WeatherCategory, bool) {
	switch name {
	case "clear":
		return WeatherClear, true
	case "cloudy":
		return WeatherCloudy, true
	case "rain":
		return WeatherRain, true
	case "snow":
		return WeatherSnow, true
	default:
		return WeatherUnspecified, false
	}
}

func (c WeatherCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *WeatherCategory) UnmarshalText(data []byte) error {
	parsed, ok := ParseWeatherCategory(string(data))
	if !ok {
		return fmt.Errorf("unknown weather category %q", string(data))
	}
	*c = parsed
	return nil
}

type TimeOfDay uint8

const (
	TimeOfDayUnspecified TimeOfDay = iota
	Morning9
	Afternoon1
	Evening6
)

// TimeOfDayFromHour maps the three canonical report hours; any other hour is rejected.
func TimeOfDayFromHour(hour int) (TimeOfDay, bool) {
	switch hour {
	case 9:
		return Morning9, true
	case 13:
		return Afternoon1, true
	case 18:
		return Evening6, true
	default:
		return TimeOfDayUnspecified, false
	}
}

func (t TimeOfDay) Hour() int {
	switch t {
	case Morning9:
		return 9
	case Afternoon1:
		return 13
	case Evening6:
		return 18
	default:
		return -1
	}
}

func (t TimeOfDay) String() string {
	switch t {
	case Morning9:
		return "09:00"
	case Afternoon1:
		return "13:00"
	case Evening6:
		return "18:00"
	default:
		return "unspecified"
	}
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(data []byte) error {
	switch string(data) {
	case "09:00":
		*t = Morning9
	case "13:00":
		*t = Afternoon1
	case "18:00":
		*t = Evening6
	default:
		return fmt.Errorf("unknown time of day %q", string(data))
	}
	return nil
}

type ForecastSlot struct {
	Date      time.Time       `json:"date"`
	TimeOfDay TimeOfDay       `json:"time"`
	Category  WeatherCategory `json:"category"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RawForecastEntry struct {
	Timestamp int64  `json:"dt"`
	Category  string `json:"category"`
}

// RawForecast is the provider forecast before range filtering.
// TimezoneOffset is the destination's UTC offset in seconds.
type RawForecast struct {
	Entries        []RawForecastEntry `json:"entries"`
	TimezoneOffset int                `json:"timezone_offset"`
}

func (f RawForecast) Location() *time.Location {
	if f.TimezoneOffset == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", f.TimezoneOffset/3600), f.TimezoneOffset)
}
