package detection

import (
	"context"
	"errors"
	"fmt"

	perr "aidetector/internal/platform/errors"
)

// Messages the detect endpoint shows as "error"
const (
	MsgTimeout     = "Detection timed out"
	MsgUnavailable = "Detection service unavailable"
	MsgBadResponse = "Detection service returned an unreadable response"
)

// maxUpstreamBody bounds how much of an upstream error body is kept
const maxUpstreamBody = 2 << 10

// UpstreamError keeps what a remote backend answered on a non 2xx status
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// NewUpstreamError truncates body to 2 KiB
func NewUpstreamError(status int, body []byte) *UpstreamError {
	if len(body) > maxUpstreamBody {
		body = body[:maxUpstreamBody]
	}
	return &UpstreamError{Status: status, Body: string(body)}
}

// ErrTooShort is the validation error for text under n runes
func ErrTooShort(n int) error {
	return perr.WithField(perr.Validationf("Text must be at least %d characters long", n), "text")
}

// Timeout marks err as the bounded wait expiring
func Timeout(err error) error { return perr.Wrap(err, perr.ErrorCodeTimeout, MsgTimeout) }

// Unavailable marks a backend that refused or failed the call
func Unavailable(err error) error { return perr.Wrap(err, perr.ErrorCodeUnavailable, MsgUnavailable) }

// BadResponse marks a reply that could not be decoded
func BadResponse(err error) error { return perr.Wrap(err, perr.ErrorCodeUpstream, MsgBadResponse) }

// classify gives an uncoded backend error its code
func classify(err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}
	return Unavailable(err)
}

// Upstream returns the upstream status and body carried by err, if any
func Upstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	ok := errors.As(err, &ue)
	return ue, ok
}
