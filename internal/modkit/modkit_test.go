package modkit

import (
	"net/http"
	"testing"
)

type sessionPort interface{ Resolve(string) string }

type fixedSession struct{}

func (fixedSession) Resolve(string) string { return "acct-1" }

func TestBuild(t *testing.T) {
	noop := func(h http.Handler) http.Handler { return h }
	b := Build(
		WithName("account"),
		WithPrefix("/account"),
		WithMiddlewares(noop),
		WithMiddlewares(noop),
		WithPorts[sessionPort](fixedSession{}),
	)
	if b.Name != "account" || b.Prefix != "/account" || len(b.Mw) != 2 {
		t.Fatalf("Build = %+v", b)
	}
	p, ok := PortsAs[sessionPort](b)
	if !ok || p.Resolve("x") != "acct-1" {
		t.Fatalf("PortsAs failed")
	}
	if _, ok := PortsAs[sessionPort](Build()); ok {
		t.Fatalf("empty build should have no ports")
	}
}
