// Package http serves the signed in caller's account and today's usage
package http

import (
	"net/http"
	"time"

	"aidetector/internal/modkit/httpkit"
	perr "aidetector/internal/platform/errors"
	accdomain "aidetector/internal/services/accounts/domain"
	qdomain "aidetector/internal/services/quota/domain"
)

// View is the account as the dashboard shows it
type View struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Plan          string    `json:"plan"`
	UsageCount    int       `json:"usageCount"`
	DailyLimit    int       `json:"dailyLimit"` // -1 when unlimited
	Remaining     int       `json:"remaining"`  // -1 when unlimited
	LastResetDate string    `json:"lastResetDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Deps are the handler dependencies
type Deps struct {
	Quota qdomain.Port
}

type handlers struct{ d Deps }

// Register mounts GET /account; callers wrap r with a required session
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d: d}
	httpkit.Get(r, "/account", h.get)
}

// @Summary Current account, plan and today's usage
// @Tags account
// @Security bearer
// @Produce json
// @Router /api/v1/account [get]
func (h *handlers) get(r *http.Request) (any, error) {
	sess, ok := accdomain.SessionFrom(r.Context())
	if !ok {
		return nil, perr.Unauthorizedf("Unauthorized")
	}
	// Load resets and stores a stale day, so the dashboard never shows yesterday's count
	acc, err := h.d.Quota.Load(r.Context(), sess)
	if err != nil {
		return nil, err
	}
	p := h.d.Quota.Policy()
	return View{
		ID:            acc.ID,
		Email:         acc.Email,
		Plan:          string(acc.Plan),
		UsageCount:    acc.Count,
		DailyLimit:    p.Limit(acc.Plan),
		Remaining:     p.Remaining(acc.Usage),
		LastResetDate: string(acc.ResetDate),
		CreatedAt:     acc.CreatedAt,
	}, nil
}
