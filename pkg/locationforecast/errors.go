package locationforecast

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when the origin answers HTTP 429. The client
// performs no retries; callers decide when to back off.
var ErrRateLimited = errors.New("locationforecast: too many requests")

// ParamError reports an invalid latitude, longitude or altitude value.
// Field identifies which parameter failed validation.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("locationforecast: invalid %s: %s", e.Field, e.Reason)
}

// TransportError wraps a failure below the HTTP protocol level (DNS, TLS,
// connection, cancellation).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("locationforecast: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-2xx status (other than 304 and 429) from the
// origin server.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("locationforecast: upstream rejected request with status %d: %s", e.StatusCode, e.Message)
}

// MalformedResponseError reports a response that violates the origin's
// contract: missing or unparsable cache headers, or a body that does not
// match the documented schema.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("locationforecast: malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("locationforecast: malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
