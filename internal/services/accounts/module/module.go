// Package module wires accounts: repo, cache, service, sessions and sign out
package module

import (
	"context"
	"fmt"

	"aidetector/internal/adapters/identity"
	"aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	"aidetector/internal/modkit/repokit"
	"aidetector/internal/services/accounts/cache"
	"aidetector/internal/services/accounts/domain"
	acchttp "aidetector/internal/services/accounts/http"
	"aidetector/internal/services/accounts/repo"
	"aidetector/internal/services/accounts/revoke"
	"aidetector/internal/services/accounts/service"
)

// Ports exposed by the accounts module
type Ports struct {
	Accounts domain.AccountsPort
	Sessions *acchttp.Sessions
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the module; a bad JWT config panics at startup
func New(deps modkit.Deps, o Options) *Module {
	v, err := identity.NewVerifier(identity.Config{
		Secret:   o.JWTSecret,
		Issuer:   o.JWTIssuer,
		Audience: o.JWTAudience,
	})
	if err != nil {
		panic(fmt.Errorf("accounts: %w", err))
	}

	db := repokit.WithBeginHooks(deps.PG, repokit.LockTimeout(o.LockTimeout))
	svc := service.New(db, repo.NewPG(), cache.New(deps.RDS, o.CacheTTL, deps.Metrics), o.Calendar)
	sessions := acchttp.NewSessions(VerifierFor(v), svc, revoke.New(deps.RDS))

	return &Module{deps: deps, opts: o, ports: Ports{Accounts: svc, Sessions: sessions}}
}

// VerifierFor adapts an identity.Verifier to the session layer
func VerifierFor(v *identity.Verifier) acchttp.Verifier {
	return func(token string) (acchttp.Verified, error) {
		id, err := v.Verify(token)
		if err != nil {
			return acchttp.Verified{}, err
		}
		return acchttp.Verified{
			Identity: domain.Identity{
				Subject:       id.Subject,
				Email:         id.Email,
				EmailVerified: id.EmailVerified,
			},
			TokenID:   id.TokenID,
			ExpiresAt: id.ExpiresAt,
		}, nil
	}
}

// Migrate applies the schema when CORE_ACCOUNTS_AUTO_MIGRATE is set
func (m *Module) Migrate(ctx context.Context) error {
	if !m.opts.AutoMigrate {
		return nil
	}
	return repo.Migrate(ctx, m.deps.PG)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "accounts" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts sign out behind a required session
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.Protected(r, m.ports.Sessions.Required(), m.ports.Sessions.Register)
}
