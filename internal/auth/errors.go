package auth

import (
	"errors"
	"fmt"
)

// ErrFlowInFlight is returned when a flow is re-submitted while the
// previous attempt is still pending.
var ErrFlowInFlight = errors.New("a request is already in flight")

// ValidationError reports a locally-caught form problem. No network
// call is made when one is raised, and no session state changes.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthRejectedError means the backend explicitly denied the submitted
// credentials or code. Session state is left untouched.
type AuthRejectedError struct {
	StatusCode int
	Message    string
}

func (e *AuthRejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("rejected by server (status %d)", e.StatusCode)
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthRejected reports whether err is an explicit backend denial.
func IsAuthRejected(err error) bool {
	var re *AuthRejectedError
	return errors.As(err, &re)
}
