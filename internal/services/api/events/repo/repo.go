// Package repo persists events and responses in postgres
package repo

import (
	"context"
	"encoding/json"
	"time"

	"meetgrid/internal/core/slots"
	"meetgrid/internal/modkit/repokit"
	perr "meetgrid/internal/platform/errors"
	"meetgrid/internal/platform/store"
	"meetgrid/internal/services/api/events/domain"
)

// Repo is the events persistence port
type Repo interface {
	CreateEvent(ctx context.Context, ev domain.EventRecord) (domain.EventRecord, error)
	// GetEvent returns perr.ErrNotFound for unknown ids
	GetEvent(ctx context.Context, id string) (domain.EventRecord, error)
	// DeleteEvent removes the event and, by cascade, its responses
	DeleteEvent(ctx context.Context, id string) error
	// UpsertResponse inserts or overwrites the (event, email) row, inserted reports which
	UpsertResponse(ctx context.Context, r domain.ResponseRecord) (out domain.ResponseRecord, inserted bool, err error)
	FindResponse(ctx context.Context, eventID, email string) (domain.ResponseRecord, error)
	// ListResponses is ordered by first submission
	ListResponses(ctx context.Context, eventID string) ([]domain.ResponseRecord, error)

	// TryPurgeLock claims the purge lock for the rest of the transaction, false when another node holds it
	TryPurgeLock(ctx context.Context) (bool, error)
	// PurgeEndedBefore deletes up to limit events whose last day is before cutoff, oldest first
	PurgeEndedBefore(ctx context.Context, cutoff slots.Date, limit int) (int64, error)
}

type (
	// PG binds the postgres implementation
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches q
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const eventColumns = `id, title, description, start_date, end_date, mode, time_mode, day_start, day_end,
	slot_minutes, min_duration_minutes, custom_slots, created_at, updated_at`

const responseColumns = `id, event_id, name, email, slots, created_at, updated_at`

func (r *queries) CreateEvent(ctx context.Context, ev domain.EventRecord) (domain.EventRecord, error) {
	p := slots.PartsOf(ev.Grid.Scheme)
	custom, err := json.Marshal(nonNil(p.Custom))
	if err != nil {
		return domain.EventRecord{}, err
	}
	const sql = `
insert into events (id, title, description, start_date, end_date, mode, time_mode, day_start, day_end,
	slot_minutes, min_duration_minutes, custom_slots)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
returning ` + eventColumns
	out, err := store.One(ctx, r.q, scanEvent, sql,
		ev.ID, ev.Title, ev.Description, ev.Grid.Start.Time(), ev.Grid.End.Time(),
		p.Mode, p.TimeMode, p.DayStart, p.DayEnd, p.SlotMinutes, ev.Grid.MinDurationMinutes, custom)
	return out, perr.FromPostgresWithField(err, "create event")
}

func (r *queries) GetEvent(ctx context.Context, id string) (domain.EventRecord, error) {
	const sql = `select ` + eventColumns + ` from events where id = $1`
	out, err := store.One(ctx, r.q, scanEvent, sql, id)
	if err != nil {
		return out, notFoundOr(err, "get event")
	}
	return out, nil
}

func (r *queries) DeleteEvent(ctx context.Context, id string) error {
	err := store.ExecOne(ctx, r.q, `delete from events where id = $1`, id)
	if err != nil {
		return notFoundOr(err, "delete event")
	}
	return nil
}

func (r *queries) UpsertResponse(ctx context.Context, in domain.ResponseRecord) (domain.ResponseRecord, bool, error) {
	// xmax is zero only for a freshly inserted tuple
	const sql = `
insert into responses (id, event_id, name, email, slots)
values ($1, $2, $3, $4, $5)
on conflict (event_id, email) do update
set name = excluded.name, slots = excluded.slots, updated_at = now()
returning ` + responseColumns + `, (xmax = 0) as inserted`

	var (
		out      domain.ResponseRecord
		inserted bool
	)
	err := store.ExecRow(ctx, r.q, func(row store.Row) error {
		var err error
		out, err = scanResponse(row, &inserted)
		return err
	}, sql, in.ID, in.EventID, in.Name, in.Email, toInt32(in.Slots))
	if err != nil {
		return out, false, perr.FromPostgresWithField(err, "upsert response")
	}
	return out, inserted, nil
}

func (r *queries) FindResponse(ctx context.Context, eventID, email string) (domain.ResponseRecord, error) {
	const sql = `select ` + responseColumns + ` from responses where event_id = $1 and email = $2`
	out, err := store.One(ctx, r.q, func(row store.Row) (domain.ResponseRecord, error) {
		return scanResponse(row, nil)
	}, sql, eventID, email)
	if err != nil {
		return out, notFoundOr(err, "find response")
	}
	return out, nil
}

func (r *queries) ListResponses(ctx context.Context, eventID string) ([]domain.ResponseRecord, error) {
	const sql = `select ` + responseColumns + ` from responses where event_id = $1 order by created_at, id`
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.ResponseRecord, error) {
		return scanResponse(row, nil)
	}, sql, eventID)
	return out, perr.FromPostgres(err, "list responses")
}

// purgeLockKey is the advisory lock id shared by every janitor
const purgeLockKey int64 = 0x6d656574677269

func (r *queries) TryPurgeLock(ctx context.Context) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, `select pg_try_advisory_xact_lock($1)`, purgeLockKey)
	return ok, perr.FromPostgres(err, "purge lock")
}

func (r *queries) PurgeEndedBefore(ctx context.Context, cutoff slots.Date, limit int) (int64, error) {
	const sql = `
delete from events
where id in (select id from events where end_date < $1 order by end_date, id limit $2)`
	tag, err := r.q.Exec(ctx, sql, cutoff.Time(), limit)
	if err != nil {
		return 0, perr.FromPostgres(err, "purge events")
	}
	return tag.RowsAffected(), nil
}

func scanEvent(row store.Row) (domain.EventRecord, error) {
	var (
		out        domain.EventRecord
		start, end time.Time
		p          slots.Parts
		minDur     int
		custom     []byte
	)
	if err := row.Scan(&out.ID, &out.Title, &out.Description, &start, &end, &p.Mode, &p.TimeMode,
		&p.DayStart, &p.DayEnd, &p.SlotMinutes, &minDur, &custom, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return out, err
	}
	if len(custom) > 0 {
		if err := json.Unmarshal(custom, &p.Custom); err != nil {
			return out, perr.Wrapf(err, perr.ErrorCodeDB, "event %s: custom_slots", out.ID)
		}
	}
	scheme, err := p.Scheme()
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeDB, "event %s: stored scheme", out.ID)
	}
	out.Grid = slots.Event{
		Start:              slots.DateOf(start),
		End:                slots.DateOf(end),
		Scheme:             scheme,
		MinDurationMinutes: minDur,
	}
	return out, nil
}

func scanResponse(row store.Row, inserted *bool) (domain.ResponseRecord, error) {
	var (
		out  domain.ResponseRecord
		sl   []int32
		dest = []any{&out.ID, &out.EventID, &out.Name, &out.Email, &sl, &out.CreatedAt, &out.UpdatedAt}
	)
	if inserted != nil {
		dest = append(dest, inserted)
	}
	if err := row.Scan(dest...); err != nil {
		return out, err
	}
	out.Slots = make([]int, len(sl))
	for i, v := range sl {
		out.Slots[i] = int(v)
	}
	return out, nil
}

func toInt32(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// notFoundOr keeps not found as is and maps anything else through the pg classifier
func notFoundOr(err error, msg string) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return err
	}
	return perr.FromPostgres(err, msg)
}
