// Package domain defines the quota port and its refusal error
package domain

import (
	"context"
	"errors"
	"fmt"

	"aidetector/internal/core/quota"
	perr "aidetector/internal/platform/errors"
	accdomain "aidetector/internal/services/accounts/domain"
)

// MsgExceeded is what a refused free account is told
const MsgExceeded = "Daily limit reached! Upgrade to Pro for unlimited scans."

// Port is the quota tracker as the API sees it
type Port interface {
	// Load returns the session's account with a stale day already reset and persisted
	Load(ctx context.Context, s accdomain.Session) (accdomain.Account, error)
	// Gate is Load followed by the daily limit check
	Gate(ctx context.Context, s accdomain.Session) (accdomain.Account, error)
	// RecordUsage charges one completed detection
	RecordUsage(ctx context.Context, s accdomain.Session) (accdomain.Account, error)
	Policy() quota.Policy
}

// ExceededError carries the numbers behind a refusal
type ExceededError struct {
	Limit int
	Used  int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("daily limit %d reached (%d used)", e.Limit, e.Used)
}

// Exceeded returns a TooManyRequests error wrapping an *ExceededError
func Exceeded(limit, used int) error {
	return perr.Wrap(&ExceededError{Limit: limit, Used: used}, perr.ErrorCodeTooManyRequests, MsgExceeded)
}

// AsExceeded unwraps the refusal details
func AsExceeded(err error) (*ExceededError, bool) {
	var e *ExceededError
	ok := errors.As(err, &e)
	return e, ok
}
