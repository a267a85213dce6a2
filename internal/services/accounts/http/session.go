// Package http resolves bearer tokens into sessions and serves sign out
package http

import (
	"context"
	"net/http"
	"time"

	"aidetector/internal/modkit/httpkit"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
	pnet "aidetector/internal/platform/net"
	"aidetector/internal/services/accounts/domain"
	"aidetector/internal/services/accounts/revoke"
)

// Verified is a token the provider signed
type Verified struct {
	Identity  domain.Identity
	TokenID   string
	ExpiresAt time.Time
}

// Verifier checks a raw bearer token
type Verifier func(token string) (Verified, error)

// Sessions turns bearer tokens into domain.Session values on the request context
type Sessions struct {
	verify   Verifier
	accounts domain.AccountsPort
	revoked  domain.Revocations
	now      func() time.Time
}

// NewSessions wires the session resolver
func NewSessions(v Verifier, accounts domain.AccountsPort, revoked domain.Revocations) *Sessions {
	if revoked == nil {
		revoked = revoke.Noop{}
	}
	return &Sessions{verify: v, accounts: accounts, revoked: revoked, now: time.Now}
}

// Acquire is an httpkit.TokenFunc: verify, refuse revoked tokens, ensure
// the account exists, then store the session on ctx
func (s *Sessions) Acquire(ctx context.Context, token string) (context.Context, error) {
	v, err := s.verify(token)
	if err != nil {
		return nil, err
	}
	tid := revoke.TokenID(v.TokenID, token)

	revoked, err := s.revoked.Revoked(ctx, tid)
	if err != nil {
		// a revocation check we cannot make must not lock everyone out
		logger.C(ctx).Warn().Err(err).Msg("revocation check failed")
	}
	if revoked {
		return nil, perr.Unauthorizedf("Session has been signed out")
	}

	acc, err := s.accounts.EnsureAccount(ctx, v.Identity)
	if err != nil {
		return nil, err
	}

	ctx = domain.WithSession(ctx, domain.Session{
		Identity:   v.Identity,
		Account:    acc,
		TokenID:    tid,
		ExpiresAt:  v.ExpiresAt,
		AcquiredAt: s.now(),
	})
	ctx = pnet.WithAccount(ctx, acc.ID)
	return logger.WithAccount(ctx, acc.ID), nil
}

// Required is the authenticator for routes that need a session
func (s *Sessions) Required() httpkit.Authenticator { return httpkit.BearerAuth(s.Acquire) }

// Optional lets requests without an Authorization header through anonymously;
// a header that is present must still verify
func (s *Sessions) Optional() httpkit.Authenticator {
	strict := s.Required()
	return httpkit.AuthenticatorFunc(func(r *http.Request) (context.Context, error) {
		if r.Header.Get("Authorization") == "" {
			return r.Context(), nil
		}
		return strict.Authenticate(r)
	})
}

// SignOut revokes the presented token until it expires
func (s *Sessions) SignOut(r *http.Request) (any, error) {
	sess, ok := domain.SessionFrom(r.Context())
	if !ok {
		return nil, perr.Unauthorizedf("Unauthorized")
	}
	if err := s.revoked.Revoke(r.Context(), sess.TokenID, sess.ExpiresAt); err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Msg("session signed out")
	return httpkit.NoContent(), nil
}

// Register mounts the session routes; callers wrap r with Required
func (s *Sessions) Register(r httpkit.Router) {
	httpkit.Post(r, "/session/sign-out", s.SignOut)
}
