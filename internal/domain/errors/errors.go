package errors

import "errors"

var (
	ErrMisconfigured     = errors.New("service misconfigured")
	ErrPlaceNotFound     = errors.New("place not found")
	ErrUpstream          = errors.New("upstream service error")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrInvalidStop       = errors.New("invalid trip stop")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrPlanNotFound      = errors.New("trip plan not found")
	ErrStorageDisabled   = errors.New("trip plan storage disabled")
	ErrCacheMiss         = errors.New("cache miss")
)
