package module

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	modkit "meetgrid/internal/modkit"
	"meetgrid/internal/platform/config"
	phttp "meetgrid/internal/platform/net/http"
	"meetgrid/internal/platform/testkit"
	erepo "meetgrid/internal/services/api/events/repo"
	metahttp "meetgrid/internal/services/api/meta/http"
)

func TestReadyTimeoutFromConfig(t *testing.T) {
	t.Setenv("META_READY_TIMEOUT", "250ms")
	m := New(modkit.Deps{Cfg: config.New()}).(*Module)
	if m.readyTimeout != 250*time.Millisecond {
		t.Fatalf("readyTimeout = %v", m.readyTimeout)
	}
}

func TestModuleMountsUnderPrefix(t *testing.T) {
	t.Parallel()
	m := New(modkit.Deps{Cfg: config.New(), PG: erepo.NewMemory()}, modkit.WithPrefix("/status"))
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name = %q ports = %v", m.Name(), m.Ports())
	}

	r := phttp.NewRouter()
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d: %s", rec.Code, rec.Body.String())
	}
	env := testkit.DecodeJSON[struct{ Data metahttp.ReadyResponse }](t, rec.Body)
	if env.Data.Status != "ok" || len(env.Data.Checks) != 1 || env.Data.Checks[0].Name != "pg" {
		t.Fatalf("ready = %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/health", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("default prefix still mounted: %d", rec.Code)
	}
}
