// Package httpkit is what service modules import for routing and responses
// so they never reach into the platform http package directly
package httpkit

import (
	"net/http"

	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/platform/net/middleware"
)

type (
	// Envelope is the /api/v1 response body
	Envelope = phttp.Envelope
	// Response is a return-style handler result
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is the platform router
	Router = phttp.Router
	// Authenticator resolves the caller of a request
	Authenticator = middleware.Authenticator
	// AuthenticatorFunc adapts a function to Authenticator
	AuthenticatorFunc = middleware.AuthenticatorFunc
)

// OK is a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a return-style handler
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Call adapts a bodyless handler; returning a Response passes it through as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}

// JSON adapts a handler taking a validated T body
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }
