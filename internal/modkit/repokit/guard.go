package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder is satisfied by *store.Store
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard pings every backend once at startup and panics on failure
// A context without deadline gets five seconds
func MustGuard(ctx context.Context, g Guarder) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
