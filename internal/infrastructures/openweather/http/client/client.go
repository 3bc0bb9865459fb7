package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/infrastructures/openweather/dto"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.openweathermap.org"

type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient fails with ErrMisconfigured when apiKey is empty. A non-positive
// rps disables request pacing.
func NewClient(baseURL, apiKey, units string, timeout time.Duration, rps float64, burst int) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: openweathermap api key is empty", derr.ErrMisconfigured)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(units) == "" {
		units = "metric"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		units:      strings.ToLower(strings.TrimSpace(units)),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

func (c *Client) Geocode(ctx context.Context, place string) (dto.GeocodingResponse, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(place))
	q.Set("limit", "1")

	var payload dto.GeocodingResponse
	if err := c.getJSON(ctx, "/geo/1.0/direct", q, "geocoding", &payload); err != nil {
		return nil, err
	}

	return payload, nil
}

func (c *Client) GetForecast(ctx context.Context, lat, lon float64) (dto.ForecastResponse, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", c.units)

	var payload dto.ForecastResponse
	if err := c.getJSON(ctx, "/data/2.5/forecast", q, "forecast", &payload); err != nil {
		return dto.ForecastResponse{}, err
	}
	if payload.List == nil {
		return dto.ForecastResponse{}, fmt.Errorf("%w: forecast response has no list", derr.ErrMalformedResponse)
	}

	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, name string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limit wait: %w", name, err)
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse openweathermap base url: %w", err)
	}
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", name, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %s request: %v", derr.ErrUpstream, name, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s status: %s", derr.ErrUpstream, name, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", derr.ErrMalformedResponse, name, err)
	}

	return nil
}

// redact strips the api key from transport errors, which embed the request URL.
func redact(err error, apiKey string) string {
	return strings.ReplaceAll(err.Error(), apiKey, "***")
}
