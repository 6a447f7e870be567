package module

import (
	"testing"

	phttp "meetgrid/internal/platform/net/http"
	"meetgrid/internal/platform/testkit"
)

type pinger interface{ Ping() string }

type pong struct{}

func (pong) Ping() string { return "pong" }

type bundle struct {
	Pinger pinger
	hidden pinger
}

type fakeModule struct{ ports any }

func (fakeModule) MountRoutes(phttp.Router) {}
func (f fakeModule) Ports() any             { return f.ports }
func (fakeModule) Name() string             { return "fake" }

func TestPortsOf(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"direct", pong{}, true},
		{"field", bundle{Pinger: pong{}}, true},
		{"pointer field", &bundle{Pinger: pong{}}, true},
		{"unexported only", bundle{hidden: pong{}}, false},
		{"nil", nil, false},
		{"not a struct", 3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			p, ok := PortsOf[pinger](fakeModule{ports: c.ports})
			if ok != c.ok {
				t.Fatalf("ok = %v", ok)
			}
			if ok && p.Ping() != "pong" {
				t.Fatalf("wrong port")
			}
		})
	}
	testkit.MustPanic(t, func() { MustPortsOf[pinger](fakeModule{}) })
}

func TestRegistry(t *testing.T) {
	testkit.Serial(t)
	Reset()
	t.Cleanup(Reset)
	Register(fakeModule{ports: pong{}})
	if p, ok := PortsAs[pinger]("fake"); !ok || p.Ping() != "pong" {
		t.Fatalf("PortsAs = %v %v", p, ok)
	}
	if _, ok := PortsAs[pinger]("missing"); ok {
		t.Fatalf("missing name should miss")
	}
	if _, ok := PortsAs[int]("fake"); ok {
		t.Fatalf("wrong type should miss")
	}
}
