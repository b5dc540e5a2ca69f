package domain

import (
	"context"
	"errors"
)

var (
	// ErrConfiguration is returned when a required parameter is missing (e.g. empty city)
	ErrConfiguration = errors.New("configuration error")

	// ErrNotAuthenticated is returned when there is no usable provider session
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrCredentialRejected is returned when the provider rejects the long-lived credential (401/403)
	ErrCredentialRejected = errors.New("provider rejected session credential")

	// ErrAuthRejected is returned when the provider rejects a freshly issued access token
	ErrAuthRejected = errors.New("provider rejected access token")

	// ErrTransientProvider is returned for timeouts, 5xx and malformed-but-parseable responses
	ErrTransientProvider = errors.New("transient provider error")

	// ErrShapeDetection is returned when a list response matches no known shape
	ErrShapeDetection = errors.New("response shape not recognized")

	// ErrRequiredEndpoint is returned when the required sub-endpoint of a detail sync fails
	ErrRequiredEndpoint = errors.New("required endpoint failed")

	// ErrUnknownScope is returned when a scope has no registered definition
	ErrUnknownScope = errors.New("unknown scope")
)

// ErrorCode maps an error to the stable code stored on sync runs
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrUnknownScope):
		return ErrorCodeConfiguration
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrCredentialRejected):
		return ErrorCodeNotAuthenticated
	case errors.Is(err, ErrAuthRejected):
		return ErrorCodeAuthRejected
	case errors.Is(err, ErrRequiredEndpoint):
		return ErrorCodeRequiredEndpoint
	case errors.Is(err, ErrShapeDetection):
		return ErrorCodeShapeDetection
	case errors.Is(err, ErrTransientProvider),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ErrorCodeTransientProvider
	default:
		return ErrorCodeInternal
	}
}
