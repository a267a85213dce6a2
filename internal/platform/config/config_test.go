package config

import (
	"testing"
	"time"

	kit "aidetector/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	quota := New().Prefix("CORE_").Prefix("QUOTA_")
	if got := quota.Key("FREE_DAILY_LIMIT"); got != "CORE_QUOTA_FREE_DAILY_LIMIT" {
		t.Fatalf("Key = %q", got)
	}
}

func TestMustStringAndInt(t *testing.T) {
	c := New().Prefix("CORE_QUOTA_")
	t.Setenv("CORE_QUOTA_NAME", "  daily ")
	if got := c.MustString("NAME"); got != "daily" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("CORE_QUOTA_FREE_DAILY_LIMIT", " 5 ")
	if got := c.MustInt("FREE_DAILY_LIMIT"); got != 5 {
		t.Fatalf("MustInt = %d", got)
	}
	t.Setenv("CORE_QUOTA_BAD", "five")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestMustBoolAndDuration(t *testing.T) {
	c := New().Prefix("CORE_CLASSIFIER_")
	t.Setenv("CORE_CLASSIFIER_ON", "true")
	if !c.MustBool("ON") {
		t.Fatalf("MustBool should be true")
	}
	t.Setenv("CORE_CLASSIFIER_OFF", "nah")
	kit.MustPanic(t, func() { _ = c.MustBool("OFF") })

	t.Setenv("CORE_CLASSIFIER_TIMEOUT", "30s")
	if got := c.MustDuration("TIMEOUT"); got != 30*time.Second {
		t.Fatalf("MustDuration = %v", got)
	}
	t.Setenv("CORE_CLASSIFIER_BAD", "thirty")
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
}

func TestMustURLAndPort(t *testing.T) {
	c := New().Prefix("CORE_")
	t.Setenv("CORE_BASE", "https://api-inference.huggingface.co")
	if u := c.MustURL("BASE"); u.Host != "api-inference.huggingface.co" {
		t.Fatalf("MustURL host = %q", u.Host)
	}
	t.Setenv("CORE_REL", "/models")
	kit.MustPanic(t, func() { _ = c.MustURL("REL") })

	t.Setenv("CORE_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	t.Setenv("CORE_PORT", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("PORT") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("REQ_")
	t.Setenv("REQ_A", "x")
	t.Setenv("REQ_WS", "   ")
	kit.MustNotPanic(t, func() { c.Require("A") })
	kit.MustPanic(t, func() { c.Require("A", "WS") })
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("MAY_")
	if got := c.MayString("MISSING", "heuristic"); got != "heuristic" {
		t.Fatalf("MayString = %q", got)
	}

	t.Setenv("MAY_INT", "x")
	if got := c.MayInt("INT", 5); got != 5 {
		t.Fatalf("MayInt bad = %d", got)
	}
	t.Setenv("MAY_INT", "12")
	if got := c.MayInt("INT", 5); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}

	t.Setenv("MAY_F", "0.75")
	if got := c.MayFloat64("F", 0); got != 0.75 {
		t.Fatalf("MayFloat64 = %v", got)
	}

	t.Setenv("MAY_B", "nope")
	if got := c.MayBool("B", true); !got {
		t.Fatalf("MayBool bad should keep default")
	}

	t.Setenv("MAY_D", "nope")
	if got := c.MayDuration("D", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad = %v", got)
	}
	t.Setenv("MAY_D", "5m")
	if got := c.MayDuration("D", time.Minute); got != 5*time.Minute {
		t.Fatalf("MayDuration = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_ORIGINS", " http://a.test, ,http://b.test ,, ")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CSV_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all blank = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CORE_DETECT_")
	if got := c.MayEnum("BACKEND", "heuristic", "heuristic", "remote"); got != "heuristic" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("CORE_DETECT_BACKEND", "Remote")
	if got := c.MayEnum("BACKEND", "heuristic", "heuristic", "remote"); got != "remote" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("CORE_DETECT_BACKEND", "openai")
	kit.MustPanic(t, func() { _ = c.MayEnum("BACKEND", "heuristic", "heuristic", "remote") })
	if got := c.MayEnum("UNSET", "", "a"); got != "" {
		t.Fatalf("MayEnum empty = %q", got)
	}
}

func TestMayLocation(t *testing.T) {
	c := New().Prefix("CORE_QUOTA_")
	if got := c.MayLocation("TIMEZONE", "UTC"); got.String() != "UTC" {
		t.Fatalf("MayLocation default = %v", got)
	}
	t.Setenv("CORE_QUOTA_TIMEZONE", "Not/AZone")
	kit.MustPanic(t, func() { _ = c.MayLocation("TIMEZONE", "UTC") })
}
