package timecamp

import (
	"errors"
	"fmt"
	"time"

	"timecamp-export/internal/codec"
)

var (
	// ErrAuthentication is returned before any request when no API token is
	// configured.
	ErrAuthentication = errors.New("timecamp: missing api token")
	// ErrInvalidRange is matched by *InvalidRangeError.
	ErrInvalidRange = errors.New("timecamp: invalid date range")
	// ErrFiltersUnsupported is returned in strict filter mode when task or
	// user ids are supplied.
	ErrFiltersUnsupported = errors.New("timecamp: task and user id filters are not supported")
)

// InvalidRangeError reports a range whose end lies before its start.
type InvalidRangeError struct {
	From, To time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("timecamp: to date %s is before from date %s",
		e.To.Format(codec.DateLayout), e.From.Format(codec.DateLayout))
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// ServiceError reports a non-2xx response from TimeCamp.
type ServiceError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("timecamp: unexpected status %d: %s", e.StatusCode, e.Body)
}
