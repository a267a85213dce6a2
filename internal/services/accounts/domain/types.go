// Package domain defines accounts, sessions and the ports around them
package domain

import (
	"time"

	"aidetector/internal/core/quota"
)

// Account is a user's row; Usage carries plan, count and reset date
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	quota.Usage
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewAccount is what Create inserts
type NewAccount struct {
	ID            string
	Email         string
	EmailVerified bool
	Plan          quota.Plan
	Today         quota.Date
}

// Patch is a partial update; nil fields are left alone
type Patch struct {
	Email         *string
	Plan          *quota.Plan
	UsageCount    *int
	LastResetDate *quota.Date
	EmailVerified *bool
}

// Empty reports whether p changes nothing
func (p Patch) Empty() bool {
	return p.Email == nil && p.Plan == nil && p.UsageCount == nil &&
		p.LastResetDate == nil && p.EmailVerified == nil
}

// UsagePatch writes u's count and reset date
func UsagePatch(u quota.Usage) Patch {
	n, d := u.Count, u.ResetDate
	return Patch{UsageCount: &n, LastResetDate: &d}
}

// Identity is a verified caller as the identity provider describes them
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
}
