package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "meetgrid/internal/platform/net/http"
	"meetgrid/internal/platform/testkit"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func get(t *testing.T, d Deps, path string) (*httptest.ResponseRecorder, ReadyResponse) {
	t.Helper()
	r := phttp.NewRouter()
	r.Route("/meta", func(rr phttp.Router) { Register(rr, d) })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	env := testkit.DecodeJSON[struct{ Data ReadyResponse }](t, rec.Body)
	return rec, env.Data
}

func TestReady(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		pg     any
		code   int
		status string
	}{
		{"ok", pingFunc(func(context.Context) error { return nil }), 200, "ok"},
		{"down", pingFunc(func(context.Context) error { return errors.New("refused") }), 503, "fail"},
		{"no pinger", struct{}{}, 200, "degraded"},
		{"none", nil, 200, "degraded"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			rec, body := get(t, Deps{ServiceName: "svc", StartedAt: time.Now(), PG: c.pg}, "/meta/ready")
			if rec.Code != c.code || body.Status != c.status {
				t.Fatalf("ready = %d %+v", rec.Code, body)
			}
		})
	}
}

func TestReadyHonoursTimeout(t *testing.T) {
	t.Parallel()
	slow := pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	rec, body := get(t, Deps{PG: slow, ReadyTimeout: 20 * time.Millisecond}, "/meta/ready")
	if rec.Code != stdhttp.StatusServiceUnavailable || body.Checks[0].Error == "" {
		t.Fatalf("slow ping = %d %+v", rec.Code, body)
	}
}

func TestInfoEndpoints(t *testing.T) {
	t.Parallel()
	r := phttp.NewRouter()
	r.Route("/meta", func(rr phttp.Router) {
		Register(rr, Deps{ServiceName: "meetgrid-api", StartedAt: time.Now().Add(-time.Minute)})
	})
	for _, path := range []string{"/meta/health", "/meta/version", "/meta/service"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("%s = %d", path, rec.Code)
		}
		testkit.MustContain(t, rec.Body.String(), "meetgrid-api")
	}
}
