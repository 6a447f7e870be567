package module

import (
	"time"

	"meetgrid/internal/platform/config"
)

// Options controls events behavior
type Options struct {
	MaxDays  int // longest date range an organizer may pick
	TopN     int // recommendations per results call
	IDLength int // generated event id length

	// StatementTimeout bounds every statement run inside an events transaction
	StatementTimeout time.Duration

	// janitor, RetentionDays 0 keeps events forever
	RetentionDays int
	PurgeEvery    time.Duration
	PurgeBatch    int
}

// FromConfig reads EVENTS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	ec := cfg.Prefix("EVENTS_")
	return Options{
		MaxDays:          ec.MayInt("MAX_DAYS", 14),
		TopN:             ec.MayInt("TOP_N", 5),
		IDLength:         ec.MayInt("ID_LENGTH", 10),
		StatementTimeout: ec.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
		RetentionDays:    ec.MayInt("RETENTION_DAYS", 0),
		PurgeEvery:       ec.MayDuration("PURGE_EVERY", time.Hour),
		PurgeBatch:       ec.MayInt("PURGE_BATCH", 500),
	}
}
