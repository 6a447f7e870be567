package store

import (
	"errors"

	"meetgrid/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Option configures Open
type Option func(*Store) error

// WithLogger hands log to the query tracer and the boot retry loop
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPoolConfig runs fn on the pgx pool config before the pool is created, after application_name is set
func WithPoolConfig(fn func(*pgxpool.Config)) Option {
	return func(s *Store) error {
		if fn == nil {
			return errors.New("store: nil pool config func")
		}
		s.poolMut = append(s.poolMut, fn)
		return nil
	}
}

// poolConfig applies the application name then every WithPoolConfig mutator in order
func (s *Store) poolConfig(appName string) func(*pgxpool.Config) {
	return func(pc *pgxpool.Config) {
		if appName != "" {
			pc.ConnConfig.RuntimeParams["application_name"] = appName
		}
		for _, fn := range s.poolMut {
			fn(pc)
		}
	}
}
