package handlers

import (
	"context"
	"errors"
	"net/http"

	derr "github.com/ozzus/trip-weather/internal/domain/errors"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after json body")

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, derr.ErrInvalidStop), errors.Is(err, derr.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, derr.ErrPlanNotFound), errors.Is(err, derr.ErrPlaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, derr.ErrStorageDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, derr.ErrUpstream), errors.Is(err, derr.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps internal details out of 5xx responses.
func errorMessage(err error) string {
	switch mapHTTPStatus(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotFound:
		if errors.Is(err, derr.ErrPlaceNotFound) {
			return "destination not found"
		}
		return "trip plan not found"
	case http.StatusNotImplemented:
		return "trip plan storage is disabled"
	case http.StatusBadGateway:
		return "weather service error"
	case http.StatusGatewayTimeout:
		return "weather lookup timed out"
	default:
		return "internal error"
	}
}
