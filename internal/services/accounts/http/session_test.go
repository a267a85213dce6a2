package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aidetector/internal/modkit/httpkit"
	perr "aidetector/internal/platform/errors"
	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/services/accounts/domain"
	"aidetector/internal/services/accounts/revoke"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccounts creates accounts for verified identities only
type fakeAccounts struct {
	domain.AccountsPort
	ensured int
}

func (f *fakeAccounts) EnsureAccount(_ context.Context, id domain.Identity) (domain.Account, error) {
	if !id.EmailVerified {
		return domain.Account{}, perr.Forbiddenf("Please verify your email before using the detector")
	}
	f.ensured++
	return domain.Account{ID: id.Subject, Email: id.Email, EmailVerified: true}, nil
}

func verifier(exp time.Time) Verifier {
	return func(token string) (Verified, error) {
		switch token {
		case "alice":
			return Verified{Identity: domain.Identity{Subject: "u-alice", Email: "a@example.com", EmailVerified: true}, TokenID: "jti-a", ExpiresAt: exp}, nil
		case "bob-unverified":
			return Verified{Identity: domain.Identity{Subject: "u-bob"}, TokenID: "jti-b", ExpiresAt: exp}, nil
		default:
			return Verified{}, perr.Unauthorizedf("Unauthorized")
		}
	}
}

func setup(t *testing.T) (*Sessions, *fakeAccounts, *miniredis.Miniredis, httpkit.Router) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	acc := &fakeAccounts{}
	s := NewSessions(verifier(time.Now().Add(time.Hour)), acc, revoke.New(rdb))

	r := phttp.AdaptChi(chi.NewRouter())
	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		httpkit.Protected(api, s.Required(), s.Register)
		httpkit.Protected(api, s.Optional(), func(o httpkit.Router) {
			httpkit.Get(o, "/maybe", func(r *http.Request) (any, error) {
				sess, ok := domain.SessionFrom(r.Context())
				if !ok {
					return "anonymous", nil
				}
				return sess.Account.ID, nil
			})
		})
	})
	return s, acc, mr, r
}

func do(r httpkit.Router, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	return rec
}

func TestAcquire(t *testing.T) {
	s, acc, _, _ := setup(t)

	ctx, err := s.Acquire(context.Background(), "alice")
	require.NoError(t, err)
	sess, ok := domain.SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-alice", sess.Account.ID)
	assert.Equal(t, "jti-a", sess.TokenID)
	assert.False(t, sess.AcquiredAt.IsZero())
	assert.Equal(t, 1, acc.ensured)

	_, err = s.Acquire(context.Background(), "bob-unverified")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeForbidden))

	_, err = s.Acquire(context.Background(), "mallory")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnauthorized))
}

func TestSignOutRevokesToken(t *testing.T) {
	_, _, mr, r := setup(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/v1/session/sign-out", "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPost, "/api/v1/session/sign-out", "alice").Code)
	assert.True(t, mr.Exists(revoke.Key("jti-a")))

	// the same token no longer opens a session
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/maybe", "alice").Code)
}

func TestOptional(t *testing.T) {
	_, _, _, r := setup(t)

	rec := do(r, http.MethodGet, "/api/v1/maybe", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anonymous")

	rec = do(r, http.MethodGet, "/api/v1/maybe", "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u-alice")

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/maybe", "mallory").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/maybe", "bob-unverified").Code)
}

type brokenRevocations struct{}

func (brokenRevocations) Revoke(context.Context, string, time.Time) error { return errors.New("redis down") }
func (brokenRevocations) Revoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRevocationOutageDoesNotLockOut(t *testing.T) {
	s := NewSessions(verifier(time.Now().Add(time.Hour)), &fakeAccounts{}, brokenRevocations{})
	ctx, err := s.Acquire(context.Background(), "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
	_, err = s.SignOut(req)
	assert.Error(t, err)
}
