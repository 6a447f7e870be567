package strings

import (
	"testing"

	"meetgrid/internal/platform/testkit"
)

func TestMustPrefix(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{"events": "/events", "/events/": "/events", " /a/b ": "/a/b"} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q", in, got)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
	testkit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"héllo", 2, "hé"},
		{"x", 0, ""},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.n); got != c.want {
			t.Fatalf("Truncate(%q,%d) = %q", c.in, c.n, got)
		}
	}
	if got := IfEmpty(nil, []int{1}); len(got) != 1 {
		t.Fatalf("IfEmpty = %v", got)
	}
}
