// Package api composes the service modules into the HTTP API
package api

import (
	"context"
	"time"

	"aidetector/internal/platform/config"
	"aidetector/internal/platform/logger"
	"aidetector/internal/platform/metrics"
	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/platform/net/middleware"
	"aidetector/internal/platform/store"

	"aidetector/internal/modkit"
	"aidetector/internal/modkit/httpkit"
	"aidetector/internal/modkit/module"
	"aidetector/internal/modkit/swaggerkit"

	accountsmod "aidetector/internal/services/accounts/module"
	accountmod "aidetector/internal/services/api/account/module"
	detectmod "aidetector/internal/services/api/detect/module"
	metahttp "aidetector/internal/services/api/meta/http"
	metamod "aidetector/internal/services/api/meta/module"
	eventsmod "aidetector/internal/services/events/module"
	quotamod "aidetector/internal/services/quota/module"

	// registers the OpenAPI document with swag
	_ "aidetector/internal/services/api/docs"
)

// Options are the API options
type Options struct {
	Config         config.Conf // root view; modules pick their own prefixes
	Store          *store.Store
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
}

// API is the mounted service
type API struct {
	accounts *accountsmod.Module
	events   *eventsmod.Module
	detect   *detectmod.Module
}

func stackFrom(cfg config.Conf, m *metrics.Metrics) httpkit.StackOptions {
	api := cfg.Prefix("CORE_API_")
	return httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins:   api.MayCSV("CORS_ORIGINS", nil),
			AllowCredentials: api.MayBool("CORS_CREDENTIALS", false),
		},
		Timeout: api.MayDuration("REQUEST_TIMEOUT", 40*time.Second),
		Slow:    api.MayDuration("SLOW_REQUEST", time.Second),
		Metrics: m,
	}
}

// Mount builds every module and mounts their routes on r
func Mount(r phttp.Router, opt Options) *API {
	if opt.Metrics == nil {
		opt.Metrics = metrics.New()
	}
	deps := modkit.DepsFrom(opt.Store, opt.Config, opt.Metrics)
	stack := stackFrom(opt.Config, opt.Metrics)

	// accounts owns sessions and the account port every other module builds on
	accounts := accountsmod.New(deps, accountsmod.FromConfig(deps.Cfg))
	accPorts := module.MustPortsOf[accountsmod.Ports](accounts)

	quota := quotamod.New(deps, accPorts.Accounts, quotamod.FromConfig(deps.Cfg))
	qPorts := module.MustPortsOf[quotamod.Ports](quota)

	events := eventsmod.New(deps)
	evPorts := module.MustPortsOf[eventsmod.Ports](events)

	detectOpts := detectmod.FromConfig(deps.Cfg)
	detectOpts.Stack = stack
	detect := detectmod.New(deps, detectmod.Ports{
		Quota:    qPorts.Quota,
		Sessions: accPorts.Sessions,
		Events:   evPorts.Recorder,
	}, detectOpts)

	account := accountmod.New(deps, modkit.WithPorts(accountmod.Ports{
		Quota:    qPorts.Quota,
		Sessions: accPorts.Sessions,
	}))

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Checker:  opt.Store,
		Expected: []string{"pg", "redis", "ch"},
		Classifier: metahttp.Classifier{
			Backend:   detect.Backend(),
			Model:     detect.Pipeline().Model(),
			MinLength: detect.Pipeline().MinLength(),
		},
	}))

	mods := []module.Module{accounts, quota, events, meta, account}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// /api/detect-ai answers flat JSON, so it sits outside the envelope scope
	detect.MountRoutes(r)

	httpkit.MountAPIV1(r, httpkit.CommonStack(stack), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	logger.Named("api").Info().
		Str("backend", detect.Backend()).
		Str("model", detect.Pipeline().Model()).
		Msg("api mounted")
	return &API{accounts: accounts, events: events, detect: detect}
}

// Migrate applies the accounts and events schemas when auto migration is on
func (a *API) Migrate(ctx context.Context) error {
	if err := a.accounts.Migrate(ctx); err != nil {
		return err
	}
	return a.events.Migrate(ctx)
}

// Run drives background work until ctx ends
func (a *API) Run(ctx context.Context) { a.detect.Run(ctx) }
