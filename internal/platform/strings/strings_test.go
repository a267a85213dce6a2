package strings

import (
	"testing"

	kit "aidetector/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	if got := IfEmpty(nil, []string{"GET"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty default = %#v", got)
	}
	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty kept = %#v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{"api/v1": "/api/v1", " /session/ ": "/session", "//x//": "/x"} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestPreview(t *testing.T) {
	if got := Preview("hf_abcdefghijk", 8, "NOT SET"); got != "hf_abcde..." {
		t.Fatalf("Preview = %q", got)
	}
	if got := Preview("abc", 8, "NOT SET"); got != "abc..." {
		t.Fatalf("short Preview = %q", got)
	}
	if got := Preview("  ", 8, "NOT SET"); got != "NOT SET" {
		t.Fatalf("blank Preview = %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "development", "x"); got != "development" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
	if FirstNonEmpty() != "" {
		t.Fatalf("no args should be empty")
	}
}
