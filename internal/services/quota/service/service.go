// Package service runs the quota rules against the account store
package service

import (
	"context"

	"aidetector/internal/core/quota"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
	"aidetector/internal/platform/metrics"
	accdomain "aidetector/internal/services/accounts/domain"
	"aidetector/internal/services/quota/domain"
)

// Svc implements domain.Port
type Svc struct {
	accounts accdomain.AccountsPort
	policy   quota.Policy
	cal      quota.Calendar
	m        *metrics.Metrics
}

var _ domain.Port = (*Svc)(nil)

// New constructs the service; m may be nil
func New(accounts accdomain.AccountsPort, p quota.Policy, cal quota.Calendar, m *metrics.Metrics) *Svc {
	if accounts == nil {
		panic("quota.Service requires an AccountsPort")
	}
	if p.FreeDailyLimit <= 0 {
		p = quota.DefaultPolicy()
	}
	return &Svc{accounts: accounts, policy: p, cal: cal, m: m}
}

// Policy implements domain.Port
func (s *Svc) Policy() quota.Policy { return s.policy }

// persistence maps any store failure onto the DB code so callers answer 500
func persistence(err error, msg string) error {
	if perr.IsCode(err, perr.ErrorCodeDB) {
		return err
	}
	return perr.Wrap(err, perr.ErrorCodeDB, msg)
}

// Load implements domain.Port
// The common case is one cached read; only a stale day takes the row lock
func (s *Svc) Load(ctx context.Context, sess accdomain.Session) (accdomain.Account, error) {
	a, err := s.accounts.Get(ctx, sess.Account.ID)
	if err != nil {
		return accdomain.Account{}, persistence(err, "Failed to load usage")
	}

	today := s.cal.Today()
	if _, stale := quota.CheckAndReset(a.Usage, today); !stale {
		return a, nil
	}

	a, err = s.accounts.Locked(ctx, a.ID, func(cur accdomain.Account) (accdomain.Patch, error) {
		u, reset := quota.CheckAndReset(cur.Usage, today)
		if !reset {
			// a concurrent request already reset it
			return accdomain.Patch{}, nil
		}
		return accdomain.UsagePatch(u), nil
	})
	if err != nil {
		return accdomain.Account{}, persistence(err, "Failed to reset daily usage")
	}
	logger.C(ctx).Debug().Str("today", string(today)).Msg("daily usage reset")
	return a, nil
}

// Gate implements domain.Port
func (s *Svc) Gate(ctx context.Context, sess accdomain.Session) (accdomain.Account, error) {
	a, err := s.Load(ctx, sess)
	if err != nil {
		return accdomain.Account{}, err
	}
	if !s.policy.IsAllowed(a.Usage) {
		if s.m != nil {
			s.m.QuotaDenied.Inc()
		}
		logger.C(ctx).Info().Int("used", a.Count).Int("limit", s.policy.FreeDailyLimit).Msg("daily limit reached")
		return a, domain.Exceeded(s.policy.Limit(a.Plan), a.Count)
	}
	return a, nil
}

// RecordUsage implements domain.Port; the increment happens under the row lock
// so concurrent completions each count once
func (s *Svc) RecordUsage(ctx context.Context, sess accdomain.Session) (accdomain.Account, error) {
	today := s.cal.Today()
	a, err := s.accounts.Locked(ctx, sess.Account.ID, func(cur accdomain.Account) (accdomain.Patch, error) {
		u, _ := quota.CheckAndReset(cur.Usage, today)
		u.Count++
		return accdomain.UsagePatch(u), nil
	})
	if err != nil {
		return accdomain.Account{}, persistence(err, "Failed to record usage")
	}
	if s.m != nil {
		s.m.UsageRecorded.WithLabelValues(string(a.Plan)).Inc()
	}
	return a, nil
}
