// Package module wires the quota tracker over the accounts port
package module

import (
	"aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	accdomain "aidetector/internal/services/accounts/domain"
	"aidetector/internal/services/quota/domain"
	"aidetector/internal/services/quota/service"
)

// Ports exposed by the quota module
type Ports struct {
	Quota domain.Port
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

// New constructs the module
func New(deps modkit.Deps, accounts accdomain.AccountsPort, o Options) *Module {
	return &Module{ports: Ports{Quota: service.New(accounts, o.Policy, o.Calendar, deps.Metrics)}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "quota" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; quota has no routes of its own
func (m *Module) MountRoutes(httpkit.Router) {}
