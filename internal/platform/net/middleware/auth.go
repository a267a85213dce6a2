package middleware

import (
	"context"
	"net/http"
)

// Authenticator resolves the caller of r and returns a context carrying them
// Returning an error rejects the request
type Authenticator interface {
	Authenticate(r *http.Request) (context.Context, error)
}

// AuthenticatorFunc adapts a function
type AuthenticatorFunc func(r *http.Request) (context.Context, error)

// Authenticate calls f
func (f AuthenticatorFunc) Authenticate(r *http.Request) (context.Context, error) { return f(r) }

// ErrorWriter renders an error in the shape of the route group
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Auth runs a on every request and hands failures to write; a nil
// Authenticator passes requests through untouched
func Auth(a Authenticator, write ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if a == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r)
			if err != nil {
				write(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
