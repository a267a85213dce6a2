// Package revoke keeps signed out session tokens in Redis until they expire
package revoke

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	perr "aidetector/internal/platform/errors"
	"aidetector/internal/services/accounts/domain"

	"github.com/redis/go-redis/v9"
)

// maxTTL covers tokens that carry no expiry
const maxTTL = 24 * time.Hour

// List is a Redis backed domain.Revocations
type List struct {
	rdb redis.UniversalClient
	now func() time.Time
}

// New returns a Noop when rdb is nil
func New(rdb redis.UniversalClient) domain.Revocations {
	if rdb == nil {
		return Noop{}
	}
	return &List{rdb: rdb, now: time.Now}
}

// Key is the Redis key for a token id
func Key(tokenID string) string { return "session:revoked:" + tokenID }

// TokenID is jti when present, else a digest of the raw token so it is never stored
func TokenID(jti, raw string) string {
	if jti != "" {
		return jti
	}
	sum := sha256.Sum256([]byte(raw))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Revoke implements domain.Revocations; an already expired token is a no-op
func (l *List) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := maxTTL
	if !until.IsZero() {
		ttl = until.Sub(l.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := l.rdb.Set(ctx, Key(tokenID), "1", ttl).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "revoke session")
	}
	return nil
}

// Revoked implements domain.Revocations
func (l *List) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.rdb.Exists(ctx, Key(tokenID)).Result()
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeUnavailable, "check session revocation")
	}
	return n > 0, nil
}

// Noop is used without Redis: sign out succeeds and nothing is ever revoked
type Noop struct{}

// Revoke implements domain.Revocations
func (Noop) Revoke(context.Context, string, time.Time) error { return nil }

// Revoked implements domain.Revocations
func (Noop) Revoked(context.Context, string) (bool, error) { return false, nil }
