package repo

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"meetgrid/internal/core/slots"
	"meetgrid/internal/modkit/repokit"
	perr "meetgrid/internal/platform/errors"
	"meetgrid/internal/services/api/events/domain"
)

// Memory keeps events in process. It is both the binder and the TxRunner, transactions
// are serialised and nothing is rolled back, which is enough for tests and the dev store
type Memory struct {
	txMu sync.Mutex

	mu        sync.Mutex
	now       func() time.Time
	events    map[string]domain.EventRecord
	responses map[string][]domain.ResponseRecord
}

// NewMemory returns an empty store
func NewMemory() *Memory {
	return &Memory{
		now:       time.Now,
		events:    map[string]domain.EventRecord{},
		responses: map[string][]domain.ResponseRecord{},
	}
}

// Bind ignores q, every binding shares the same maps
func (m *Memory) Bind(repokit.Queryer) Repo { return m }

// Tx runs fn while holding the transaction lock
func (m *Memory) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

var errNoSQL = perr.New(perr.ErrorCodeUnavailable, "memory store does not run sql")

// Exec always fails
func (m *Memory) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errNoSQL
}

// Query always fails
func (m *Memory) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, errNoSQL }

// QueryRow returns a row whose Scan fails
func (m *Memory) QueryRow(context.Context, string, ...any) repokit.Row { return failRow{} }

type failRow struct{}

func (failRow) Scan(...any) error { return errNoSQL }

// Ping always succeeds
func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) CreateEvent(_ context.Context, ev domain.EventRecord) (domain.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[ev.ID]; ok {
		return domain.EventRecord{}, perr.WithField(perr.New(perr.ErrorCodeDuplicateKey, "create event"), "id")
	}
	ts := m.now().UTC()
	ev.CreatedAt, ev.UpdatedAt = ts, ts
	m.events[ev.ID] = ev
	return ev, nil
}

func (m *Memory) GetEvent(_ context.Context, id string) (domain.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return domain.EventRecord{}, perr.ErrNotFound
	}
	return ev, nil
}

func (m *Memory) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return perr.ErrNotFound
	}
	delete(m.events, id)
	delete(m.responses, id)
	return nil
}

func (m *Memory) UpsertResponse(_ context.Context, in domain.ResponseRecord) (domain.ResponseRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[in.EventID]; !ok {
		return domain.ResponseRecord{}, false, perr.WithField(perr.New(perr.ErrorCodeNotFound, "upsert response"), "event_id")
	}
	ts := m.now().UTC()
	in.Slots = slices.Clone(in.Slots)
	list := m.responses[in.EventID]
	for i, r := range list {
		if r.Email == in.Email {
			r.Name, r.Slots, r.UpdatedAt = in.Name, in.Slots, ts
			list[i] = r
			r.Slots = slices.Clone(r.Slots)
			return r, false, nil
		}
	}
	in.CreatedAt, in.UpdatedAt = ts, ts
	m.responses[in.EventID] = append(list, in)
	in.Slots = slices.Clone(in.Slots)
	return in, true, nil
}

func (m *Memory) FindResponse(_ context.Context, eventID, email string) (domain.ResponseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.responses[eventID] {
		if r.Email == email {
			r.Slots = slices.Clone(r.Slots)
			return r, nil
		}
	}
	return domain.ResponseRecord{}, perr.ErrNotFound
}

func (m *Memory) ListResponses(_ context.Context, eventID string) ([]domain.ResponseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ResponseRecord, 0, len(m.responses[eventID]))
	for _, r := range m.responses[eventID] {
		r.Slots = slices.Clone(r.Slots)
		out = append(out, r)
	}
	return out, nil
}

// TryPurgeLock always succeeds, Tx already serialises
func (m *Memory) TryPurgeLock(context.Context) (bool, error) { return true, nil }

func (m *Memory) PurgeEndedBefore(_ context.Context, cutoff slots.Date, limit int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []domain.EventRecord
	for _, ev := range m.events {
		if ev.Grid.End.Before(cutoff) {
			expired = append(expired, ev)
		}
	}
	slices.SortFunc(expired, func(a, b domain.EventRecord) int {
		if c := a.Grid.End.Time().Compare(b.Grid.End.Time()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	for _, ev := range expired {
		delete(m.events, ev.ID)
		delete(m.responses, ev.ID)
	}
	return int64(len(expired)), nil
}
