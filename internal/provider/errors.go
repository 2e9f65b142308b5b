package provider

import (
	"errors"
	"fmt"
)

// APIError captures a non-2xx response from the upstream provider.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string // truncated excerpt for diagnostics
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
}

// AsAPIError attempts to unwrap an error into an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// LockedError marks a write rejected because the period's lineup is already
// locked for editing. The orchestrator treats it as a soft skip, not a
// failure.
type LockedError struct {
	ScoringPeriodID int
	Message         string
}

func (e *LockedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lineup locked for period %d: %s", e.ScoringPeriodID, e.Message)
	}
	return fmt.Sprintf("lineup locked for period %d", e.ScoringPeriodID)
}

// IsLocked reports whether the error represents a locked-lineup rejection.
func IsLocked(err error) bool {
	var lockErr *LockedError
	return errors.As(err, &lockErr)
}
