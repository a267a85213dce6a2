// Package module wires the detection event log
package module

import (
	"context"

	"aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	"aidetector/internal/services/events/domain"
	"aidetector/internal/services/events/repo"
	"aidetector/internal/services/events/service"
)

// Ports exposed by the events module
type Ports struct {
	Recorder domain.RecorderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the module; without ClickHouse events are dropped
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	w := repo.NewCH(deps.CH)
	if _, off := w.(repo.Noop); off {
		deps.Log.Info().Msg("clickhouse disabled; detection events are not recorded")
	}
	svc := service.New(w, service.Config{WriteTimeout: opts.WriteTimeout})
	return &Module{deps: deps, opts: opts, ports: Ports{Recorder: svc}}
}

// Migrate creates the events table when CORE_EVENTS_AUTO_MIGRATE is set
func (m *Module) Migrate(ctx context.Context) error {
	if !m.opts.AutoMigrate {
		return nil
	}
	return repo.Migrate(ctx, m.deps.CH)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "events" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
