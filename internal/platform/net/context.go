// Package net holds transport neutral request helpers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const (
	keyAccountID ctxKey = iota
	keyClientIP
)

// WithRequestID stores id where chi's request id middleware would
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID returns the request id, empty when none was assigned
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithAccount stores the authenticated account id
func WithAccount(ctx context.Context, accountID string) context.Context {
	if accountID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyAccountID, accountID)
}

// AccountID returns the authenticated account id, empty for anonymous callers
func AccountID(ctx context.Context) string {
	s, _ := ctx.Value(keyAccountID).(string)
	return s
}

// WithClientIP stores the caller address resolved by the real ip middleware
func WithClientIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, keyClientIP, ip)
}

// ClientIP returns the stored caller address
func ClientIP(ctx context.Context) string {
	s, _ := ctx.Value(keyClientIP).(string)
	return s
}
