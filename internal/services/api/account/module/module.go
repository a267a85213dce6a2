// Package module wires the account API
package module

import (
	"aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	str "aidetector/internal/platform/strings"
	acchttp "aidetector/internal/services/accounts/http"
	accounthttp "aidetector/internal/services/api/account/http"
	qdomain "aidetector/internal/services/quota/domain"
)

// Ports the account API consumes
type Ports struct {
	Quota    qdomain.Port
	Sessions *acchttp.Sessions
}

// Module implements modkit.Module
type Module struct {
	name  string
	b     modkit.Built
	ports Ports
}

// New constructs the module; Ports must be injected with modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("account")}, opts...)...)
	p, ok := modkit.PortsAs[Ports](b)
	if !ok || p.Quota == nil || p.Sessions == nil {
		panic("account module requires quota and session ports")
	}
	return &Module{name: b.Name, b: b, ports: p}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return str.FirstNonEmpty(m.name, "account") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts GET /account behind a required session
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.Protected(r, m.ports.Sessions.Required(), func(p httpkit.Router) {
		if len(m.b.Mw) > 0 {
			p.Use(m.b.Mw...)
		}
		accounthttp.Register(p, accounthttp.Deps{Quota: m.ports.Quota})
	})
}
