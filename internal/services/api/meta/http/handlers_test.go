package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "aidetector/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checker map[string]error

func (c checker) Ready(context.Context) map[string]error { return c }

func serve(t *testing.T, d Deps, path string, out any) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestReady(t *testing.T) {
	cases := []struct {
		name    string
		checker Checker
		want    string
	}{
		{"all up", checker{"pg": nil, "redis": nil, "ch": nil}, "ok"},
		{"ch off", checker{"pg": nil, "redis": nil}, "degraded"},
		{"pg down", checker{"pg": errors.New("connection refused"), "redis": nil, "ch": nil}, "fail"},
		{"no store", nil, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReadyResponse
			serve(t, Deps{Checker: tc.checker, Expected: []string{"pg", "redis", "ch"}}, "/ready", &got)
			assert.Equal(t, tc.want, got.Status)
			require.Len(t, got.Checks, 3)
			assert.Equal(t, "ch", got.Checks[0].Name, "checks are sorted")
		})
	}

	var got ReadyResponse
	serve(t, Deps{Checker: checker{"pg": errors.New("refused")}, Expected: []string{"pg"}}, "/ready", &got)
	assert.Equal(t, []ReadyCheck{{Name: "pg", Status: "fail", Error: "refused"}}, got.Checks)
}

func TestServiceUptime(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	d := Deps{ServiceName: "aidetector-api", StartedAt: start, now: func() time.Time { return start.Add(90 * time.Second) }}

	var svc ServiceResponse
	serve(t, d, "/service", &svc)
	assert.Equal(t, int64(90), svc.Uptime)
	assert.Equal(t, "2026-03-02T12:00:00Z", svc.Started)

	var h HealthResponse
	serve(t, d, "/health", &h)
	assert.True(t, h.OK)
	assert.Equal(t, "2026-03-02T12:01:30Z", h.Now)
}

func TestClassifierAndVersion(t *testing.T) {
	d := Deps{ServiceName: "aidetector-api", Classifier: Classifier{Backend: "heuristic", Model: "heuristic-v1", MinLength: 50}}

	var c ClassifierResponse
	serve(t, d, "/classifier", &c)
	assert.Equal(t, "heuristic-v1", c.Model)
	assert.Equal(t, 50, c.MinLength)
	assert.Equal(t, "aidetector-api", c.Build.Service)

	var v map[string]any
	serve(t, d, "/version", &v)
	assert.Equal(t, "aidetector-api", v["service"])
}
