package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aidetector/internal/platform/config"
	perr "aidetector/internal/platform/errors"
	pnet "aidetector/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestRouterGroupsAndMethods(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Route("/api/v1", func(v1 Router) {
		v1.Group(func(g Router) {
			g.Get("/account", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusOK) })
		})
		v1.With(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				w.Header().Set("X-Scoped", "1")
				next.ServeHTTP(w, r)
			})
		}).Post("/session/sign-out", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusNoContent) })
	})
	r.Method(stdhttp.MethodPut, "/api/detect-ai", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusMethodNotAllowed)
	})

	for _, c := range []struct {
		method, path string
		want         int
	}{
		{stdhttp.MethodGet, "/api/v1/account", stdhttp.StatusOK},
		{stdhttp.MethodPost, "/api/v1/session/sign-out", stdhttp.StatusNoContent},
		{stdhttp.MethodPut, "/api/detect-ai", stdhttp.StatusMethodNotAllowed},
		{stdhttp.MethodGet, "/nope", stdhttp.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != c.want {
			t.Fatalf("%s %s = %d, want %d", c.method, c.path, rec.Code, c.want)
		}
	}
}

func TestHandleResponses(t *testing.T) {
	ctx := pnet.WithRequestID(context.Background(), "req-9")

	rec := httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response { return OK(map[string]int{"remaining": 3}) }).
		ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil).WithContext(ctx))
	env := decode(t, rec)
	if rec.Code != stdhttp.StatusOK || env.RequestID != "req-9" {
		t.Fatalf("ok = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response { return Error(perr.Forbiddenf("Email not verified")) }).
		ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	env = decode(t, rec)
	if rec.Code != stdhttp.StatusForbidden || env.Error != "Email not verified" || env.Code != perr.ErrorCodeForbidden {
		t.Fatalf("error = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response {
		return Response{Status: stdhttp.StatusNoContent, Header: stdhttp.Header{"X-Usage-Count": {"2"}}}
	}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/", nil))
	if rec.Code != stdhttp.StatusNoContent || rec.Body.Len() != 0 || rec.Header().Get("X-Usage-Count") != "2" {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response { return Created("x") }).
		ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/", nil))
	if rec.Code != stdhttp.StatusCreated || decode(t, rec).StatusCode != stdhttp.StatusCreated {
		t.Fatalf("created = %d", rec.Code)
	}
}

func TestJSONHandler(t *testing.T) {
	type in struct {
		Plan string `json:"plan" validate:"required,oneof=free pro"`
	}
	h := JSONHandler(func(_ *stdhttp.Request, v in) (any, error) { return v.Plan, nil })

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(stdhttp.MethodPatch, "/", strings.NewReader(`{"plan":"pro"}`)))
	if rec.Code != stdhttp.StatusOK || decode(t, rec).Data != "pro" {
		t.Fatalf("valid = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(stdhttp.MethodPatch, "/", strings.NewReader(`{"plan":"gold"}`)))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("invalid = %d", rec.Code)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	t.Setenv("TEST_API_PORT", "127.0.0.1:0")
	s := NewServer(config.New().Prefix("TEST_API_"))
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", s.Addr())
	}
	GetJSON(s.Router(), "/ping", func(*stdhttp.Request) (any, error) { return "pong", nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Second) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestNewServerPortDefault(t *testing.T) {
	t.Setenv("TEST2_PORT", "8080")
	if got := NewServer(config.New().Prefix("TEST2_")).Addr(); got != ":8080" {
		t.Fatalf("addr = %q", got)
	}
}
