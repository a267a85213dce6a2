// Package module wires the detection endpoint: classifier, pipeline, quota
// gate, rate limiter and event log
package module

import (
	"context"
	"time"

	"aidetector/internal/adapters/classifier/hfinference"
	"aidetector/internal/core/detection"
	"aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/net/middleware"
	acchttp "aidetector/internal/services/accounts/http"
	dethttp "aidetector/internal/services/api/detect/http"
	evdomain "aidetector/internal/services/events/domain"
	qdomain "aidetector/internal/services/quota/domain"
)

// Ports are what the detect module needs from other modules
type Ports struct {
	Quota    qdomain.Port
	Sessions *acchttp.Sessions
	Events   evdomain.RecorderPort
}

// Module implements modkit.Module
type Module struct {
	deps    modkit.Deps
	opts    Options
	pipe    *detection.Pipeline
	limiter *middleware.RateLimiter
	http    dethttp.Deps
}

// NewClassifier returns the deployment's one backend
func NewClassifier(o Options) detection.Classifier {
	if o.Backend == BackendRemote {
		return hfinference.New(o.Classifier)
	}
	return detection.NewHeuristic()
}

// New constructs the module
func New(deps modkit.Deps, p Ports, o Options) *Module {
	pipe := detection.NewPipeline(NewClassifier(o),
		detection.WithMinLength(o.MinLength),
		detection.WithObserver(dethttp.Observe(deps.Metrics, o.Backend)),
	)
	limiter := middleware.NewRateLimiter(o.Tiers, o.Fallback, dethttp.ByPlan)

	var unconfigured error
	if o.Backend == BackendRemote && o.Classifier.APIKey == "" {
		unconfigured = perr.Internalf("Hugging Face API key not configured")
		deps.Log.Warn().Msg("remote classifier selected without an API key; detections will fail")
	}

	var session middleware.Authenticator
	if p.Sessions != nil {
		session = p.Sessions.Required()
		if o.AllowAnonymous {
			session = p.Sessions.Optional()
		}
	}

	return &Module{
		deps:    deps,
		opts:    o,
		pipe:    pipe,
		limiter: limiter,
		http: dethttp.Deps{
			Pipeline:     pipe,
			Quota:        p.Quota,
			Events:       p.Events,
			Metrics:      deps.Metrics,
			Session:      session,
			Limiter:      limiter,
			Backend:      o.Backend,
			APIKey:       o.Classifier.APIKey,
			Unconfigured: unconfigured,
			Env:          o.Env,
		},
	}
}

// Pipeline is the module's detection pipeline
func (m *Module) Pipeline() *detection.Pipeline { return m.pipe }

// Backend names the active classifier backend
func (m *Module) Backend() string { return m.opts.Backend }

// Run sweeps idle rate limiter buckets until ctx ends
func (m *Module) Run(ctx context.Context) {
	every := m.opts.SweepEvery
	if every <= 0 {
		every = time.Minute
	}
	m.limiter.Run(ctx, every)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "detect" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }

// MountRoutes mounts the endpoint at the root with its own flat error writer
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(g httpkit.Router) {
		stack := m.opts.Stack
		stack.Metrics = m.deps.Metrics
		stack.Writer = dethttp.WriteError
		g.Use(httpkit.CommonStack(stack)...)
		dethttp.Register(g, m.http)
	})
}
