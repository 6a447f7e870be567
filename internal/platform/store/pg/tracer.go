package pg

import (
	"context"
	"strings"

	"meetgrid/internal/platform/logger"
	pstrings "meetgrid/internal/platform/strings"

	"github.com/rs/zerolog"
)

// maxLoggedSQL caps the statement text per log line, schema migrations run to several KB
const maxLoggedSQL = 2000

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement regardless of the root level
// it is only installed when SQL logging is switched on
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if ev.Err != nil {
		evt = z.log.Error().Err(ev.Err)
	}
	evt.Ctx(ctx).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", pstrings.Truncate(compact(ev.SQL), maxLoggedSQL)).
		Interface("args", ev.Args).
		Msg("pg query")
}

// compact folds a multi line statement onto one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
