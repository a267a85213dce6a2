package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeTimeout.String(); got != "timeout" {
		t.Fatalf("timeout label = %q", got)
	}
	if got := ErrorCode(4242).String(); got != "code_4242" {
		t.Fatalf("fallback label = %q", got)
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	root := stderrs.New("connection reset")
	err := Wrap(root, ErrorCodeUnavailable, "classifier call failed")
	if !stderrs.Is(err, root) {
		t.Fatalf("cause lost")
	}
	if CodeOf(err) != ErrorCodeUnavailable {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if got := err.Error(); got != "classifier call failed: connection reset" {
		t.Fatalf("render = %q", got)
	}
	e, _ := As(err)
	if e.Message() != "classifier call failed" {
		t.Fatalf("message = %q", e.Message())
	}

	// foreign wrapping still finds our code
	outer := fmt.Errorf("detect: %w", err)
	if !IsCode(outer, ErrorCodeUnavailable) {
		t.Fatalf("IsCode through fmt wrap failed")
	}
	if Root(outer) != root {
		t.Fatalf("Root did not reach the cause")
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
}

func TestWithFieldAndOpCopy(t *testing.T) {
	base := Validationf("text too short")
	withField := WithField(base, "text")
	withOp := WithOp(withField, "detect")

	be, _ := As(base)
	if be.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}
	we, _ := As(withOp)
	if we.Field() != "text" || we.Op() != "detect" {
		t.Fatalf("field/op = %q/%q", we.Field(), we.Op())
	}

	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatalf("foreign errors should pass through")
	}
}

func TestWireAndHTTP(t *testing.T) {
	status, w := HTTP(nil)
	if status != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", status, w)
	}

	status, w = HTTP(WithField(Validationf("bad"), "text"))
	if status != http.StatusBadRequest || w.Code != ErrorCodeValidation || w.Field != "text" {
		t.Fatalf("HTTP(validation) = %d %+v", status, w)
	}

	w = WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unauthorizedf("x"), ErrorCodeUnauthorized},
		{Forbiddenf("x"), ErrorCodeForbidden},
		{TooManyf("x"), ErrorCodeTooManyRequests},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Timeoutf("x"), ErrorCodeTimeout},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Fatalf("CodeOf(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
