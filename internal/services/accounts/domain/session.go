package domain

import (
	"context"
	"time"
)

// Session is the per request caller context, acquired when a bearer token
// verifies and released with the request
type Session struct {
	Identity   Identity
	Account    Account
	TokenID    string // jti, or a digest of the token when it has none
	ExpiresAt  time.Time
	AcquiredAt time.Time
}

type sessionKey struct{}

// WithSession stores s on ctx
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session on ctx
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
