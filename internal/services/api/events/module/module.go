// Package module wires events into the API using modkit
package module

import (
	"net/http"

	modkit "meetgrid/internal/modkit"
	"meetgrid/internal/modkit/httpkit"
	"meetgrid/internal/modkit/repokit"

	ehttp "meetgrid/internal/services/api/events/http"
	erepo "meetgrid/internal/services/api/events/repo"
	esvc "meetgrid/internal/services/api/events/service"
)

// Module implements the events API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	svc esvc.Service
}

// New constructs the events module
// a *repo.Memory in deps.PG switches the module to the in process store
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("events"),
		modkit.WithPrefix("/events"),
	}, opts...)...)

	if deps.PG == nil {
		panic("events API module requires a TxRunner")
	}
	cfg := FromConfig(deps.Cfg)

	var (
		db     = deps.PG
		binder = erepo.NewPG()
	)
	if mem, ok := deps.PG.(*erepo.Memory); ok {
		binder = mem
	} else {
		db = repokit.WithBeginHooks(db, repokit.StatementTimeout(cfg.StatementTimeout))
	}

	svc := esvc.New(db, binder, esvc.Options{
		MaxDays:       cfg.MaxDays,
		TopN:          cfg.TopN,
		IDLength:      cfg.IDLength,
		RetentionDays: cfg.RetentionDays,
		PurgeEvery:    cfg.PurgeEvery,
		PurgeBatch:    cfg.PurgeBatch,
	})

	deps.Log.Debug().
		Str("module", b.Name).
		Int("max_days", cfg.MaxDays).
		Int("top_n", cfg.TopN).
		Msg("events module ready")

	return &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Reader: adaptEventsPort{svc: svc}, Janitor: svc},
		svc:    svc,
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		ehttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
