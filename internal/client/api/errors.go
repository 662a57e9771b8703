package api

import (
	"fmt"

	"github.com/brocat-app/brocat/internal/common"
)

// ErrorBody is the structured error payload the backend attaches to non-2xx
// responses. All fields are optional; Message doubles as the carrier for
// non-JSON bodies.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Reason  string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is returned for every rejected call: HTTP-level failures carry
// the response status, envelope-level failures (success=false) carry the
// server's message with the original status.
type APIError struct {
	Status int
	Body   ErrorBody
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Message())
}

// Message returns the most specific human-readable message available.
func (e *APIError) Message() string {
	switch {
	case e.Body.Reason != "":
		return e.Body.Reason
	case e.Body.Message != "":
		return e.Body.Message
	case e.Body.Code != "":
		return e.Body.Code
	default:
		return fmt.Sprintf("HTTP %d", e.Status)
	}
}

// Is maps rejected statuses onto the shared sentinels so callers can use
// errors.Is without inspecting status codes. A 5xx answer matches both
// ErrUnavailable and ErrInternal: the server failed, and from the client's
// point of view it is also not serving.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == 401
	case common.ErrNotFound:
		return e.Status == 404
	case common.ErrUnavailable, common.ErrInternal:
		return e.Status >= 500
	default:
		return false
	}
}
