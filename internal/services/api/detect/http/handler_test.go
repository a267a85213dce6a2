package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aidetector/internal/core/detection"
	"aidetector/internal/core/quota"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/metrics"
	phttp "aidetector/internal/platform/net/http"
	"aidetector/internal/platform/net/middleware"
	accdomain "aidetector/internal/services/accounts/domain"
	evdomain "aidetector/internal/services/events/domain"
	qdomain "aidetector/internal/services/quota/domain"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var essay = strings.Repeat("The committee reviewed the proposal in detail. ", 3)

type stubClassifier struct {
	labels []detection.Label
	err    error
	calls  int
}

func (s *stubClassifier) Classify(context.Context, string) ([]detection.Label, error) {
	s.calls++
	return s.labels, s.err
}
func (s *stubClassifier) Model() string { return "stub-v1" }

type stubQuota struct {
	usage     quota.Usage
	gateErr   error
	recordErr error
	gates     int
	records   int
}

func (q *stubQuota) Load(_ context.Context, s accdomain.Session) (accdomain.Account, error) {
	return accdomain.Account{ID: s.Account.ID, Usage: q.usage}, nil
}
func (q *stubQuota) Gate(ctx context.Context, s accdomain.Session) (accdomain.Account, error) {
	q.gates++
	if q.gateErr != nil {
		return accdomain.Account{}, q.gateErr
	}
	return q.Load(ctx, s)
}
func (q *stubQuota) RecordUsage(ctx context.Context, s accdomain.Session) (accdomain.Account, error) {
	q.records++
	if q.recordErr != nil {
		return accdomain.Account{}, q.recordErr
	}
	q.usage.Count++
	return q.Load(ctx, s)
}
func (q *stubQuota) Policy() quota.Policy { return quota.DefaultPolicy() }

type events struct{ got []evdomain.Event }

func (e *events) Record(_ context.Context, ev evdomain.Event) { e.got = append(e.got, ev) }

// bearerIsAccount treats the bearer token as the account id
var bearerIsAccount = middleware.AuthenticatorFunc(func(r *http.Request) (context.Context, error) {
	id := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if id == "" {
		return nil, perr.Unauthorizedf("Unauthorized")
	}
	return accdomain.WithSession(r.Context(), accdomain.Session{
		Account: accdomain.Account{ID: id, Usage: quota.Usage{Plan: quota.PlanFree}},
	}), nil
})

type fixture struct {
	c  *stubClassifier
	q  *stubQuota
	ev *events
	m  *metrics.Metrics
	r  phttp.Router
}

func newFixture(t *testing.T, mutate func(*Deps)) *fixture {
	t.Helper()
	f := &fixture{
		c:  &stubClassifier{labels: []detection.Label{{Label: "Real", Score: 0.18}, {Label: "Fake", Score: 0.82}}},
		q:  &stubQuota{usage: quota.Usage{Plan: quota.PlanFree, Count: 2, ResetDate: "2026-03-02"}},
		ev: &events{},
		m:  metrics.New(),
	}
	d := Deps{
		Pipeline: detection.NewPipeline(f.c, detection.WithObserver(Observe(f.m, "remote"))),
		Quota:    f.q,
		Events:   f.ev,
		Metrics:  f.m,
		Session:  bearerIsAccount,
		Backend:  "remote",
		APIKey:   "hf_abcdefghijkl",
		Env:      "test",
	}
	if mutate != nil {
		mutate(&d)
	}
	f.r = phttp.AdaptChi(chi.NewRouter())
	Register(f.r, d)
	return f
}

func (f *fixture) do(method, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/detect-ai", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.r.Mux().ServeHTTP(rec, req)
	return rec
}

func textBody(s string) string {
	b, _ := json.Marshal(Request{Text: s})
	return string(b)
}

func TestDetectSuccess(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "u1", textBody(essay))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"aiProbability":82,"confidence":"High","assessment":"likely-ai","textLength":141,"model":"stub-v1"}`, rec.Body.String())
	assert.Equal(t, "3", rec.Header().Get(HeaderUsageCount))
	assert.Equal(t, "5", rec.Header().Get(HeaderUsageLimit))
	assert.Equal(t, 1, f.q.gates)
	assert.Equal(t, 1, f.q.records)

	require.Len(t, f.ev.got, 1)
	assert.Equal(t, "u1", f.ev.got[0].AccountID)
	assert.Equal(t, "free", f.ev.got[0].Plan)
	assert.Equal(t, 82, f.ev.got[0].AIProbability)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.m.Detections.WithLabelValues("remote", "completed")))
}

func TestDetectProLimitHeader(t *testing.T) {
	f := newFixture(t, nil)
	f.q.usage.Plan = quota.PlanPro

	rec := f.do(http.MethodPost, "u1", textBody(essay))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "-1", rec.Header().Get(HeaderUsageLimit))
}

func TestDetectValidation(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "u1", textBody("too short"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Text must be at least 50 characters long"}`, rec.Body.String())

	rec = f.do(http.MethodPost, "u1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Text must be at least 50 characters long"}`, rec.Body.String())

	rec = f.do(http.MethodPost, "u1", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, f.c.calls)
	assert.Zero(t, f.q.gates)
}

func TestDetectRequiresSession(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(http.MethodPost, "", textBody(essay))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	assert.Zero(t, f.c.calls)
}

func TestDetectQuotaRefusedBeforeDispatch(t *testing.T) {
	f := newFixture(t, nil)
	f.q.gateErr = qdomain.Exceeded(5, 5)

	rec := f.do(http.MethodPost, "u1", textBody(essay))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Daily limit reached! Upgrade to Pro for unlimited scans."}`, rec.Body.String())
	assert.Zero(t, f.c.calls, "classifier must not run")
	assert.Zero(t, f.q.records, "nothing recorded")
	assert.Empty(t, f.ev.got)
}

func TestDetectBackendFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		want    string
		details string
	}{
		{"timeout", context.DeadlineExceeded, detection.MsgTimeout, "context deadline exceeded"},
		{"unavailable", detection.Unavailable(detection.NewUpstreamError(503, []byte("model loading"))), detection.MsgUnavailable, "upstream status 503: model loading"},
		{"bad response", detection.BadResponse(errors.New("unexpected EOF")), detection.MsgBadResponse, "unexpected EOF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.c.err = tc.err

			rec := f.do(http.MethodPost, "u1", textBody(essay))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body.Error)
			assert.Equal(t, tc.details, body.Details)
			assert.Zero(t, f.q.records, "failed detections are not charged")
			assert.Empty(t, rec.Header().Get(HeaderUsageCount))
		})
	}
}

func TestDetectRecordUsageFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.q.recordErr = perr.Wrap(errors.New("connection reset"), perr.ErrorCodeDB, "Failed to record usage")

	rec := f.do(http.MethodPost, "u1", textBody(essay))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to record usage","details":"connection reset"}`, rec.Body.String())
	assert.Empty(t, f.ev.got)
}

func TestDetectUnconfigured(t *testing.T) {
	f := newFixture(t, func(d *Deps) {
		d.APIKey = ""
		d.Unconfigured = perr.Internalf("Hugging Face API key not configured")
	})
	rec := f.do(http.MethodPost, "u1", textBody(essay))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Hugging Face API key not configured"}`, rec.Body.String())
	assert.Zero(t, f.c.calls)
}

func TestDetectAnonymous(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Session = nil })

	rec := f.do(http.MethodPost, "", textBody(essay))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(HeaderUsageCount))
	assert.Zero(t, f.q.gates)
	require.Len(t, f.ev.got, 1)
	assert.Equal(t, PlanAnonymous, f.ev.got[0].Plan)
}

func TestDetectRateLimited(t *testing.T) {
	f := newFixture(t, func(d *Deps) {
		d.Limiter = middleware.NewRateLimiter(map[string]middleware.TierLimit{
			"free": {PerMinute: 1, Burst: 1},
		}, middleware.TierLimit{PerMinute: 1, Burst: 1}, ByPlan)
	})

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "u1", textBody(essay)).Code)
	rec := f.do(http.MethodPost, "u1", textBody(essay))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please slow down."}`, rec.Body.String())
	// another account has its own bucket
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "u2", textBody(essay)).Code)
}

func TestMethods(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasApiKey":true,"keyPreview":"hf_abcde...","environment":"test"}`, rec.Body.String())

	for _, m := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec = f.do(m, "u1", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, m)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
	}

	f = newFixture(t, func(d *Deps) { d.APIKey = "" })
	rec = f.do(http.MethodGet, "", "")
	assert.JSONEq(t, `{"hasApiKey":false,"keyPreview":"NOT SET","environment":"test"}`, rec.Body.String())
}

func TestEnvDiagnostic(t *testing.T) {
	f := newFixture(t, nil)
	rec := httptest.NewRecorder()
	f.r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test-env", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got EnvDiagnostic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.HasAPIKey)
	assert.True(t, strings.HasPrefix(got.GoVersion, "go"))
}

func TestRender(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{perr.Validationf("bad"), http.StatusBadRequest},
		{perr.JSONErrf("invalid JSON"), http.StatusBadRequest},
		{perr.Unauthorizedf("no"), http.StatusUnauthorized},
		{perr.Forbiddenf("Please verify your email before using the detector"), http.StatusForbidden},
		{perr.TooManyf("slow"), http.StatusTooManyRequests},
		{perr.Timeoutf("late"), http.StatusInternalServerError},
		{perr.PanicErrf("boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, body := Render(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.NotEmpty(t, body.Error)
	}

	_, body := Render(perr.PanicErrf("boom"))
	assert.Equal(t, "Internal server error", body.Error)
}

func TestObserveCountsFailures(t *testing.T) {
	f := newFixture(t, nil)
	f.c.err = context.DeadlineExceeded
	f.do(http.MethodPost, "u1", textBody(essay))

	assert.Equal(t, 1.0, testutil.ToFloat64(f.m.Detections.WithLabelValues("remote", perr.ErrorCodeTimeout.String())))
	assert.Zero(t, testutil.ToFloat64(f.m.Detections.WithLabelValues("remote", "completed")))
}
