package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetgrid/internal/modkit/module"
	"meetgrid/internal/platform/config"
	phttp "meetgrid/internal/platform/net/http"
	eventsmod "meetgrid/internal/services/api/events/module"
	"meetgrid/internal/services/api/events/repo"
)

func TestMount(t *testing.T) {
	t.Cleanup(module.Reset)

	r := phttp.NewRouter()
	mods := Mount(r, Options{Config: config.New(), PG: repo.NewMemory(), EnableSwagger: true})
	if len(mods) != 2 {
		t.Fatalf("modules = %d", len(mods))
	}
	if _, ok := module.PortsAs[eventsmod.Ports]("events"); !ok {
		t.Fatalf("events ports not registered")
	}

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/v1/meta/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/meta/ready", "", http.StatusOK},
		{http.MethodPost, "/api/v1/events", `{"title":"x","start_date":"2025-01-01","end_date":"2025-01-01","mode":"fullDay"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/events/missing", "", http.StatusNotFound},
		{http.MethodGet, "/api/docs/doc.json", "", http.StatusOK},
		{http.MethodGet, "/debug/pprof/", "", http.StatusNotFound},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, strings.NewReader(c.body)))
		if rec.Code != c.want {
			t.Fatalf("%s %s = %d want %d: %s", c.method, c.path, rec.Code, c.want, rec.Body.String())
		}
	}
}
