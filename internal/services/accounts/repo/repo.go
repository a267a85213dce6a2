// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	_ "embed"
	"strconv"
	"strings"
	"time"

	"aidetector/internal/core/quota"
	"aidetector/internal/modkit/repokit"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/store"
	"aidetector/internal/services/accounts/domain"
)

//go:embed schema.sql
var schema string

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// Migrate applies the embedded schema; it is idempotent
func Migrate(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return perr.FromPostgres(err, "apply accounts schema")
	}
	return nil
}

const cols = `id, email, plan, usage_count, last_reset_date, email_verified, created_at, updated_at`

func scan(row store.Row) (domain.Account, error) {
	var (
		a     domain.Account
		plan  string
		reset time.Time
	)
	err := row.Scan(&a.ID, &a.Email, &plan, &a.Count, &reset, &a.EmailVerified, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, err
	}
	a.Plan = quota.Plan(plan)
	a.ResetDate = quota.DateOf(reset, time.UTC)
	return a, nil
}

// Get implements domain.Repo
func (r *queries) Get(ctx context.Context, id string) (domain.Account, error) {
	a, err := store.One(ctx, r.q, scan, `SELECT `+cols+` FROM accounts WHERE id = $1`, id)
	if err != nil {
		return domain.Account{}, perr.FromPostgres(err, "get account")
	}
	return a, nil
}

// GetForUpdate implements domain.Repo
func (r *queries) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	a, err := store.One(ctx, r.q, scan, `SELECT `+cols+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return domain.Account{}, perr.FromPostgres(err, "lock account")
	}
	return a, nil
}

// Create implements domain.Repo; a concurrent first sign in for the same id
// loses the insert and reads the winner's row
func (r *queries) Create(ctx context.Context, n domain.NewAccount) (domain.Account, bool, error) {
	plan := n.Plan
	if plan == "" {
		plan = quota.PlanFree
	}
	a, err := store.One(ctx, r.q, scan, `
		INSERT INTO accounts (id, email, plan, usage_count, last_reset_date, email_verified)
		VALUES ($1, $2, $3, 0, $4::date, $5)
		ON CONFLICT (id) DO NOTHING
		RETURNING `+cols,
		n.ID, n.Email, string(plan), string(n.Today), n.EmailVerified,
	)
	switch {
	case err == nil:
		return a, true, nil
	case perr.IsNoRows(err):
		a, err = r.Get(ctx, n.ID)
		return a, false, err
	default:
		return domain.Account{}, false, perr.FromPostgres(err, "create account")
	}
}

// Update implements domain.Repo; an empty patch reads the row back unchanged
func (r *queries) Update(ctx context.Context, id string, p domain.Patch) (domain.Account, error) {
	if p.Empty() {
		return r.Get(ctx, id)
	}

	sets := make([]string, 0, 6)
	args := []any{id}
	set := func(col string, v any, cast string) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args))+cast)
	}
	if p.Email != nil {
		set("email", *p.Email, "")
	}
	if p.Plan != nil {
		set("plan", string(*p.Plan), "")
	}
	if p.UsageCount != nil {
		set("usage_count", *p.UsageCount, "")
	}
	if p.LastResetDate != nil {
		set("last_reset_date", string(*p.LastResetDate), "::date")
	}
	if p.EmailVerified != nil {
		set("email_verified", *p.EmailVerified, "")
	}
	sets = append(sets, "updated_at = now()")

	a, err := store.One(ctx, r.q, scan,
		`UPDATE accounts SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+cols,
		args...,
	)
	if err != nil {
		return domain.Account{}, perr.FromPostgres(err, "update account")
	}
	return a, nil
}
