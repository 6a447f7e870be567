// @title         meetgrid API
// @version       1.0.0
// @description   Group availability scheduling: events, responses and ranked meeting times

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetgrid/internal/core/version"
	"meetgrid/internal/modkit/module"
	"meetgrid/internal/modkit/repokit"
	"meetgrid/internal/platform/config"
	"meetgrid/internal/platform/logger"
	phttp "meetgrid/internal/platform/net/http"
	"meetgrid/internal/platform/store"

	"meetgrid/internal/services/api"
	eventsmod "meetgrid/internal/services/api/events/module"
	erepo "meetgrid/internal/services/api/events/repo"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// bring up logging early
	lopt := logger.FromEnv()
	if lopt.Service == "" {
		lopt.Service = version.Service()
	}
	logger.Init(lopt)
	l := logger.Get()

	// service-scoped config for HTTP etc (CORE_API_*), postgres under SERVICE_PGSQL_*
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, closeDB := openDB(ctx, root, apiCfg)
	defer closeDB()

	r := phttp.NewRouter()
	api.Mount(r, api.Options{
		Config:         root,
		PG:             db,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		Timeout:        apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", time.Second),
	})

	// retention janitor runs beside the server and stops with it
	if p, ok := module.PortsAs[eventsmod.Ports]("events"); ok && p.Janitor != nil {
		go func() {
			if err := p.Janitor.Run(ctx); err != nil {
				l.Error().Err(err).Msg("janitor stopped")
			}
		}()
	}

	srv := phttp.NewServer(r.Mux(), phttp.ServerOptions{
		Addr:          apiCfg.MayPort("PORT", 4000),
		ShutdownGrace: apiCfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second),
	})
	l.Info().Interface("build", version.Info()).Str("addr", srv.Addr()).Msg("starting")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}

// openDB returns the events store: postgres by default, the in process store when CORE_API_STORE=memory
func openDB(ctx context.Context, root, apiCfg config.Conf) (repokit.TxRunner, func()) {
	l := logger.Get()

	if apiCfg.MayString("STORE", "postgres") == "memory" {
		l.Warn().Msg("using the in memory store, data is lost on restart")
		return erepo.NewMemory(), func() {}
	}

	pgEnv := root.Prefix("SERVICE_PGSQL_")
	idle := pgEnv.MayDuration("MAX_CONN_IDLE", 5*time.Minute)
	st, err := store.Open(ctx, store.Config{AppName: version.Service(), PG: store.PGFromConfig(pgEnv)},
		store.WithLogger(*l),
		store.WithPoolConfig(func(pc *pgxpool.Config) { pc.MaxConnIdleTime = idle }),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustPing(ctx, "pg", st.PG.(store.Pinger))

	if apiCfg.MayBool("AUTO_MIGRATE", false) {
		if err := erepo.Migrate(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("migrate failed")
		}
		l.Info().Msg("events schema applied")
	}

	return st.PG, func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}
}
