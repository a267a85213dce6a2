// Package service implements domain.AccountsPort over Postgres with an
// optional Redis cache in front of reads
package service

import (
	"context"
	"strings"

	"aidetector/internal/core/quota"
	"aidetector/internal/modkit/repokit"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
	"aidetector/internal/services/accounts/cache"
	"aidetector/internal/services/accounts/domain"
)

// ErrEmailNotVerified refuses sign in until the provider reports a verified email
var ErrEmailNotVerified = perr.Forbiddenf("Please verify your email before using the detector")

// Svc implements domain.AccountsPort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	cache  *cache.Cache
	cal    quota.Calendar
	log    logger.Logger
}

var _ domain.AccountsPort = (*Svc)(nil)

// New constructs the service; c may be nil
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], c *cache.Cache, cal quota.Calendar) *Svc {
	if db == nil {
		panic("accounts.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("accounts.Service requires a non-nil Repo binder")
	}
	return &Svc{
		db:     db,
		binder: cache.Binder(binder, c),
		cache:  c,
		cal:    cal,
		log:    *logger.Named("accounts"),
	}
}

func (s *Svc) repo() domain.Repo { return repokit.MustBind(s.binder, s.db) }

// EnsureAccount returns the caller's account, creating it on the first
// verified sign in; email and verification state follow the provider
func (s *Svc) EnsureAccount(ctx context.Context, id domain.Identity) (domain.Account, error) {
	if strings.TrimSpace(id.Subject) == "" {
		return domain.Account{}, perr.Unauthorizedf("Unauthorized")
	}
	if !id.EmailVerified {
		return domain.Account{}, ErrEmailNotVerified
	}

	r := s.repo()
	acc, err := r.Get(ctx, id.Subject)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		acc, created, err := r.Create(ctx, domain.NewAccount{
			ID:            id.Subject,
			Email:         id.Email,
			EmailVerified: true,
			Plan:          quota.PlanFree,
			Today:         s.cal.Today(),
		})
		if err != nil {
			return domain.Account{}, err
		}
		if created {
			logger.C(ctx).Info().Str("account_id", acc.ID).Msg("account created")
		}
		return acc, nil
	case err != nil:
		return domain.Account{}, err
	}

	var p domain.Patch
	if id.Email != "" && id.Email != acc.Email {
		p.Email = &id.Email
	}
	if !acc.EmailVerified {
		v := true
		p.EmailVerified = &v
	}
	if p.Empty() {
		return acc, nil
	}
	return r.Update(ctx, acc.ID, p)
}

// Get implements domain.AccountsPort
func (s *Svc) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.repo().Get(ctx, id)
}

// Update implements domain.AccountsPort
func (s *Svc) Update(ctx context.Context, id string, p domain.Patch) (domain.Account, error) {
	if p.Plan != nil && !p.Plan.Valid() {
		return domain.Account{}, perr.WithField(perr.Validationf("unknown plan %q", *p.Plan), "plan")
	}
	if p.UsageCount != nil && *p.UsageCount < 0 {
		return domain.Account{}, perr.WithField(perr.Validationf("usage count must not be negative"), "usageCount")
	}
	return s.repo().Update(ctx, id, p)
}

// Locked implements domain.AccountsPort
func (s *Svc) Locked(ctx context.Context, id string, fn func(domain.Account) (domain.Patch, error)) (domain.Account, error) {
	var out domain.Account
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		acc, err := r.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		p, err := fn(acc)
		if err != nil {
			return err
		}
		if p.Empty() {
			out = acc
			return nil
		}
		out, err = r.Update(ctx, id, p)
		return err
	})
	// a reader may have cached the pre-commit row
	s.cache.Invalidate(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	return out, nil
}
