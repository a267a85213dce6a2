// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	str "aidetector/internal/platform/strings"

	metahttp "aidetector/internal/services/api/meta/http"
)

// ServiceName is what health and version report
const ServiceName = "aidetector-api"

// Ports the meta module reads: readiness and the detection backend
type Ports struct {
	Checker    metahttp.Checker
	Expected   []string
	Classifier metahttp.Classifier
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	p, _ := modkit.PortsAs[Ports](b)

	return &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     p,
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Checker:     m.ports.Checker,
			Expected:    m.ports.Expected,
			Classifier:  m.ports.Classifier,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.FirstNonEmpty(m.name, "meta") }

// Prefix is where the routes mount
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
