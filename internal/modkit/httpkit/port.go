package httpkit

import (
	"context"
	"net/http"

	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/net/middleware"
)

// TokenFunc resolves a bearer token into a context carrying the caller
type TokenFunc func(ctx context.Context, token string) (context.Context, error)

// BearerAuth is a middleware.Authenticator reading the Authorization header
// Any failure surfaces as unauthorized unless fn already returned a coded
// error such as forbidden
func BearerAuth(fn TokenFunc) middleware.Authenticator {
	return middleware.AuthenticatorFunc(func(r *http.Request) (context.Context, error) {
		token, err := BearerToken(r)
		if err != nil {
			return nil, err
		}
		ctx, err := fn(r.Context(), token)
		if err != nil {
			if perr.CodeOf(err) == perr.ErrorCodeUnknown {
				return nil, perr.Wrap(err, perr.ErrorCodeUnauthorized, "Unauthorized")
			}
			return nil, err
		}
		return ctx, nil
	})
}
