package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "aidetector/internal/platform/errors"
)

type planPatch struct {
	Plan string `json:"plan" validate:"required,oneof=free pro"`
	Note string `json:"note,omitempty" validate:"omitempty,notblank,max=20"`
}

func req(body string) *http.Request {
	return httptest.NewRequest(http.MethodPatch, "/api/v1/account", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[planPatch](req(`{"plan":"pro"}`))
	if err != nil || got.Plan != "pro" {
		t.Fatalf("ParseJSON = %+v, %v", got, err)
	}
}

func TestParseJSONErrors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
	}{
		{"empty", ``, perr.ErrorCodeJSON, ""},
		{"malformed", `{"plan":`, perr.ErrorCodeJSON, ""},
		{"unknown field", `{"plan":"pro","tier":1}`, perr.ErrorCodeJSON, ""},
		{"trailing", `{"plan":"pro"} {}`, perr.ErrorCodeJSON, ""},
		{"bad enum", `{"plan":"gold"}`, perr.ErrorCodeValidation, "plan"},
		{"blank note", `{"plan":"free","note":"   "}`, perr.ErrorCodeValidation, "note"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[planPatch](req(c.body))
			if perr.CodeOf(err) != c.code {
				t.Fatalf("code = %v, want %v (%v)", perr.CodeOf(err), c.code, err)
			}
			if c.field != "" {
				e, _ := perr.As(err)
				if e.Field() != c.field {
					t.Fatalf("field = %q, want %q", e.Field(), c.field)
				}
			}
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	type body struct {
		Text string `json:"text"`
	}
	got, err := Decode[body](req(`{"text":"hello","extra":true}`), Options{})
	if err != nil || got.Text != "hello" {
		t.Fatalf("Decode = %+v, %v", got, err)
	}
	_, err = Decode[body](req(`{"text":"`+strings.Repeat("a", 64)+`"}`), Options{MaxBytes: 16})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("oversized body code = %v", perr.CodeOf(err))
	}
}

func TestValidateMessage(t *testing.T) {
	err := Validate(planPatch{Plan: "free", Note: strings.Repeat("x", 30)})
	if !strings.Contains(err.Error(), "note must be at most 20") {
		t.Fatalf("message = %q", err.Error())
	}
}
