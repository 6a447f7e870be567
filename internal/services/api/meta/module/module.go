// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"meetgrid/internal/core/version"
	modkit "meetgrid/internal/modkit"
	"meetgrid/internal/modkit/httpkit"
	str "meetgrid/internal/platform/strings"

	metahttp "meetgrid/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	readyTimeout time.Duration
	startedAt    time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		deps:         deps,
		name:         b.Name,
		prefix:       b.Prefix,
		mws:          b.Mw,
		readyTimeout: deps.Cfg.Prefix("META_").MayDuration("READY_TIMEOUT", 2*time.Second),
		startedAt:    time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		metahttp.Register(rr, metahttp.Deps{
			ServiceName:  version.Service(),
			StartedAt:    m.startedAt,
			PG:           m.deps.PG,
			ReadyTimeout: m.readyTimeout,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
