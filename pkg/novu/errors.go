package novu

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrValidation marks input rejected before any request was sent.
var ErrValidation = errors.New("validation error")

// RequestError is returned when no usable response was received: the transport failed
// or the body could not be decoded. Novu's own 4xx/5xx answers are never RequestErrors.
type RequestError struct {
	Operation  string
	Method     string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 5)
	parts = append(parts, "novu request failed")

	if e.Operation != "" {
		parts = append(parts, "op="+e.Operation)
	}
	if e.Method != "" || e.URL != "" {
		parts = append(parts, strings.TrimSpace(e.Method+" "+e.URL))
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsTimeout reports whether err was caused by a deadline or a transport timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
