// Package api provides the HTTP API for the application
package api

import (
	"time"

	"meetgrid/internal/modkit/repokit"
	"meetgrid/internal/platform/config"
	"meetgrid/internal/platform/logger"
	phttp "meetgrid/internal/platform/net/http"

	"meetgrid/internal/modkit"
	"meetgrid/internal/modkit/httpkit"
	"meetgrid/internal/modkit/module"
	"meetgrid/internal/modkit/swaggerkit"

	eventsmod "meetgrid/internal/services/api/events/module"
	metamod "meetgrid/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	// PG is the pool adapter or the in process events store
	PG             repokit.TxRunner
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
}

// Mount mounts the API service onto the given router and returns the mounted modules
func Mount(r phttp.Router, opt Options) []module.Module {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log: *log,
		Cfg: opt.Config,
		PG:  opt.PG,
	}

	mods := []module.Module{
		metamod.New(deps),
		eventsmod.New(deps),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.Timeout,
		SlowRequest: opt.SlowRequest,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m)
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
	return mods
}
