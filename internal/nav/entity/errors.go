package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoRoute means no registered pattern matched the path.
	ErrNoRoute = errors.New("no route matched")
	// ErrRouteNotFound means no route carries the requested name.
	ErrRouteNotFound = errors.New("named route not found")
	// ErrSuperseded means a newer navigation canceled this one.
	ErrSuperseded = errors.New("navigation superseded")
	// ErrNetwork matches every NetworkError.
	ErrNetwork = errors.New("network error")
	// ErrTimeout matches every TimeoutError.
	ErrTimeout = errors.New("navigation timeout")
)

// NetworkError is a failed transport call or a non-2xx response.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// TimeoutError is a fetch that exceeded the configured timeout.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch %s: timed out after %s", e.URL, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
