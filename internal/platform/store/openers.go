package store

import (
	"context"
	"fmt"
	"time"

	"meetgrid/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// seam for tests
var openPool = pg.Open

// openPG opens the pool, waits for the server to answer and publishes the traced adapter on s
func openPG(ctx context.Context, cfg PGConfig, mut func(*pgxpool.Config), s *Store) (TxRunner, error) {
	cfg = cfg.withDefaults()

	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := openPool(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, tracer, mut)
	if err != nil {
		return nil, err
	}

	// ping the pool directly so boot retries stay out of the query trace
	var lastErr error
	backoff := backoffStart
	for i := 0; i < cfg.ConnectRetries; i++ {
		pctx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()

		if lastErr == nil {
			a := newPGAdapter(p)
			s.PG = a
			return a, nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", cfg.ConnectRetries, lastErr)
}
