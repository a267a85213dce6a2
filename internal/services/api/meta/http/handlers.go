// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"sort"
	"time"

	"aidetector/internal/core/version"
	"aidetector/internal/modkit/httpkit"
)

// Checker reports per backend health, keyed by backend name; *store.Store satisfies it
type Checker interface {
	Ready(stdctx.Context) map[string]error
}

// Classifier describes the active detection backend
type Classifier struct {
	Backend   string `json:"backend"    example:"heuristic"`
	Model     string `json:"model"      example:"heuristic-v1"`
	MinLength int    `json:"min_length" example:"50"`
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checker     Checker // nil reports every backend as skipped
	Expected    []string
	Classifier  Classifier
	now         func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.now == nil {
		d.now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/classifier", h.classifier)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"aidetector-api"`
	Started string `json:"started" example:"2026-03-02T13:00:00Z"`
	Now     string `json:"now"     example:"2026-03-02T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-02T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"aidetector-api"`
	Started string `json:"started" example:"2026-03-02T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ClassifierResponse reports the detection backend and build info
type ClassifierResponse struct {
	Classifier
	Build version.BuildInfo `json:"build"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var got map[string]error
	if h.deps.Checker != nil {
		got = h.deps.Checker.Ready(ctx)
	}

	names := append([]string(nil), h.deps.Expected...)
	for name := range got {
		if !contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	overall := "ok"
	checks := make([]ReadyCheck, 0, len(names))
	for _, name := range names {
		err, present := got[name]
		c := ReadyCheck{Name: name, Status: "ok"}
		switch {
		case !present:
			c.Status = "skipped"
			if overall == "ok" {
				overall = "degraded"
			}
		case err != nil:
			c.Status, c.Error = "fail", err.Error()
			overall = "fail"
		}
		checks = append(checks, c)
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    h.deps.now().UTC().Format(time.RFC3339),
	}, nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// @Summary Active detection backend
// @Tags Meta
// @Produce json
// @Router /meta/classifier [get]
func (h *handlers) classifier(_ *http.Request) (any, error) {
	return ClassifierResponse{
		Classifier: h.deps.Classifier,
		Build:      version.Info(h.deps.ServiceName),
	}, nil
}
