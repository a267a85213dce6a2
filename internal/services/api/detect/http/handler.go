// Package http serves /api/detect-ai: the gated detection endpoint and its
// configuration diagnostic
package http

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"aidetector/internal/core/detection"
	"aidetector/internal/modkit/httpkit"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
	"aidetector/internal/platform/metrics"
	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/platform/net/http/bind"
	"aidetector/internal/platform/net/middleware"
	str "aidetector/internal/platform/strings"
	accdomain "aidetector/internal/services/accounts/domain"
	evdomain "aidetector/internal/services/events/domain"
	qdomain "aidetector/internal/services/quota/domain"
)

// Usage headers on a successful detection by a signed in caller
const (
	HeaderUsageCount = "X-Usage-Count"
	HeaderUsageLimit = "X-Usage-Limit"
)

// PlanAnonymous labels events from callers without a session
const PlanAnonymous = "anonymous"

// Deps are the handler dependencies; Quota, Events, Metrics and Limiter may be nil
type Deps struct {
	Pipeline *detection.Pipeline
	Quota    qdomain.Port
	Events   evdomain.RecorderPort
	Metrics  *metrics.Metrics
	Session  middleware.Authenticator
	Limiter  *middleware.RateLimiter

	Backend string
	APIKey  string
	// Unconfigured, when set, fails every POST before anything else runs
	Unconfigured error
	Env          string
}

// Request is the POST body
type Request struct {
	Text string `json:"text"`
}

// Diagnostic is the GET body
type Diagnostic struct {
	HasAPIKey   bool   `json:"hasApiKey"`
	KeyPreview  string `json:"keyPreview"`
	Environment string `json:"environment"`
}

// EnvDiagnostic adds the runtime version, served at /api/test-env
type EnvDiagnostic struct {
	Diagnostic
	GoVersion string `json:"goVersion"`
}

type handler struct {
	d    Deps
	post http.Handler
}

// Register mounts /api/detect-ai and /api/test-env on r
func Register(r httpkit.Router, d Deps) {
	h := &handler{d: d}

	var post http.Handler = http.HandlerFunc(h.detect)
	if d.Limiter != nil {
		post = d.Limiter.Middleware(WriteError)(post)
	}
	if d.Session != nil {
		post = middleware.Auth(d.Session, WriteError)(post)
	}
	h.post = post

	r.Handle("/api/detect-ai", h)
	r.Get("/api/test-env", func(w http.ResponseWriter, _ *http.Request) {
		phttp.JSON(w, http.StatusOK, EnvDiagnostic{Diagnostic: h.diagnostic(), GoVersion: runtime.Version()})
	})
}

// ServeHTTP dispatches on method before any authentication
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		phttp.JSON(w, http.StatusOK, h.diagnostic())
	case http.MethodPost:
		h.post.ServeHTTP(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		phttp.JSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: MsgMethodNotAllowed})
	}
}

func (h *handler) diagnostic() Diagnostic {
	return Diagnostic{
		HasAPIKey:   h.d.APIKey != "",
		KeyPreview:  str.Preview(h.d.APIKey, 8, "NOT SET"),
		Environment: h.d.Env,
	}
}

func (h *handler) detect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, err := bind.Decode[Request](r, bind.Options{})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.d.Pipeline.Validate(req.Text); err != nil {
		WriteError(w, r, err)
		return
	}
	if h.d.Unconfigured != nil {
		WriteError(w, r, h.d.Unconfigured)
		return
	}

	sess, signedIn := accdomain.SessionFrom(ctx)
	gated := signedIn && h.d.Quota != nil
	if gated {
		// a refusal here never reaches the classifier
		if _, err := h.d.Quota.Gate(ctx, sess); err != nil {
			WriteError(w, r, err)
			return
		}
	}

	res, err := h.d.Pipeline.Run(ctx, req.Text)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	plan := PlanAnonymous
	if gated {
		acc, err := h.d.Quota.RecordUsage(ctx, sess)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		plan = string(acc.Plan)
		w.Header().Set(HeaderUsageCount, strconv.Itoa(acc.Count))
		w.Header().Set(HeaderUsageLimit, strconv.Itoa(h.d.Quota.Policy().Limit(acc.Plan)))
	} else if signedIn {
		plan = string(sess.Account.Plan)
	}

	phttp.JSON(w, http.StatusOK, res)

	if h.d.Events != nil {
		h.d.Events.Record(ctx, evdomain.Event{
			AccountID:     sess.Account.ID,
			Plan:          plan,
			Model:         res.Model,
			AIProbability: res.AIProbability,
			Confidence:    string(res.Confidence),
			Assessment:    string(res.Assessment),
			TextLength:    res.TextLength,
			Latency:       time.Since(start),
		})
	}
}

// Observe reports pipeline transitions as debug logs and detection metrics
func Observe(m *metrics.Metrics, backend string) detection.Observer {
	return func(ctx context.Context, t detection.Transition) {
		ev := logger.C(ctx).Debug().Str("from", string(t.From)).Str("to", string(t.To)).Dur("elapsed", t.Elapsed)
		if t.Err != nil {
			ev = ev.Err(t.Err)
		}
		ev.Msg("detection stage")

		if m == nil {
			return
		}
		switch t.To {
		case detection.StageCompleted:
			m.Detections.WithLabelValues(backend, "completed").Inc()
			m.DetectionDuration.WithLabelValues(backend).Observe(t.Elapsed.Seconds())
		case detection.StageFailed:
			m.Detections.WithLabelValues(backend, perr.CodeOf(t.Err).String()).Inc()
			if t.From != detection.StageValidating {
				m.DetectionDuration.WithLabelValues(backend).Observe(t.Elapsed.Seconds())
			}
		}
	}
}

// ByPlan keys the rate limiter on the session account and its plan, falling
// back to the client ip for anonymous callers
func ByPlan(r *http.Request) (string, string) {
	if s, ok := accdomain.SessionFrom(r.Context()); ok {
		return "acct:" + s.Account.ID, string(s.Account.Plan)
	}
	return middleware.ByAccountOrIP(r)
}
