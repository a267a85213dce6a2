package domain

import (
	"context"
	"time"
)

// Repo is the account table
type Repo interface {
	Get(ctx context.Context, id string) (Account, error)
	// Create inserts a; created is false when the id already existed, in
	// which case the stored row is returned
	Create(ctx context.Context, a NewAccount) (acc Account, created bool, err error)
	Update(ctx context.Context, id string, p Patch) (Account, error)
	// GetForUpdate locks the row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id string) (Account, error)
}

// AccountsPort is what other modules use
type AccountsPort interface {
	EnsureAccount(ctx context.Context, id Identity) (Account, error)
	Get(ctx context.Context, id string) (Account, error)
	Update(ctx context.Context, id string, p Patch) (Account, error)
	// Locked runs fn against the row locked in one transaction and applies
	// the patch it returns before committing
	Locked(ctx context.Context, id string, fn func(Account) (Patch, error)) (Account, error)
}

// Revocations remembers signed out tokens until they expire
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}
