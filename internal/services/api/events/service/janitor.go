package service

import (
	"context"
	"time"

	"meetgrid/internal/core/slots"
	"meetgrid/internal/modkit/repokit"
	"meetgrid/internal/platform/logger"
)

// PurgeExpired runs one janitor pass and returns how many events it deleted
// only one node purges at a time, the others see the lock held and skip
func (s *Svc) PurgeExpired(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := slots.DateOf(s.now()).AddDays(-s.retentionDays)

	var n int64
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		ok, err := r.TryPurgeLock(ctx)
		if err != nil || !ok {
			return err
		}
		n, err = r.PurgeEndedBefore(ctx, cutoff, s.purgeBatch)
		return err
	})
	return n, err
}

// Run purges expired events every PurgeEvery until ctx ends
// it returns at once when retention is off
func (s *Svc) Run(ctx context.Context) error {
	if s.retentionDays <= 0 {
		return nil
	}
	log := logger.Named("events.janitor")
	log.Info().Int("retention_days", s.retentionDays).Dur("every", s.purgeEvery).Msg("janitor started")

	t := time.NewTicker(s.purgeEvery)
	defer t.Stop()
	for {
		start := time.Now()
		n, err := s.PurgeExpired(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			log.Warn().Err(err).Msg("purge failed")
		case n > 0:
			log.Info().Int64("events", n).Dur("took", time.Since(start)).Msg("expired events purged")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
