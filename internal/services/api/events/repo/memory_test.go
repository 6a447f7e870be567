package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"meetgrid/internal/core/slots"
	"meetgrid/internal/modkit/repokit"
	perr "meetgrid/internal/platform/errors"
	"meetgrid/internal/services/api/events/domain"
)

func fullDay(id string) domain.EventRecord {
	start, _ := slots.ParseDate("2025-06-01")
	return domain.EventRecord{ID: id, Title: "t", Grid: slots.Event{Start: start, End: start, Scheme: slots.FullDay{}}}
}

func TestMemoryEvents(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.CreateEvent(ctx, fullDay("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateEvent(ctx, fullDay("a")); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("duplicate = %v", err)
	}
	if _, err := m.GetEvent(ctx, "b"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("missing = %v", err)
	}
	if err := m.DeleteEvent(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteEvent(ctx, "a"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}

func TestMemoryUpsert(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	tick := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { tick = tick.Add(time.Minute); return tick }
	ctx := context.Background()
	_, _ = m.CreateEvent(ctx, fullDay("e"))

	in := domain.ResponseRecord{ID: "r1", EventID: "e", Name: "A", Email: "a@x.io", Slots: []int{0}}
	first, inserted, err := m.UpsertResponse(ctx, in)
	if err != nil || !inserted {
		t.Fatalf("insert = %v %v", inserted, err)
	}
	in.Slots[0] = 99 // caller's slice is not retained

	again, inserted, err := m.UpsertResponse(ctx, domain.ResponseRecord{ID: "r2", EventID: "e", Name: "B", Email: "a@x.io", Slots: []int{}})
	if err != nil || inserted {
		t.Fatalf("update = %v %v", inserted, err)
	}
	if again.ID != "r1" || !again.CreatedAt.Equal(first.CreatedAt) || !again.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("update should keep identity and bump updated_at: %+v", again)
	}

	list, _ := m.ListResponses(ctx, "e")
	if len(list) != 1 || list[0].Name != "B" {
		t.Fatalf("list = %+v", list)
	}
	list[0].Name = "mutated"
	if got, _ := m.FindResponse(ctx, "e", "a@x.io"); got.Name != "B" {
		t.Fatalf("list must return a copy, got %q", got.Name)
	}

	if _, _, err := m.UpsertResponse(ctx, domain.ResponseRecord{EventID: "nope", Email: "a@x.io"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unknown event = %v", err)
	}
}

func TestMemoryResponsesDoNotAliasStore(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	ctx := context.Background()
	_, _ = m.CreateEvent(ctx, fullDay("e"))

	created, _, err := m.UpsertResponse(ctx, domain.ResponseRecord{ID: "r1", EventID: "e", Name: "A", Email: "a@x.io", Slots: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	created.Slots[0] = 7

	updated, _, err := m.UpsertResponse(ctx, domain.ResponseRecord{ID: "r2", EventID: "e", Name: "A", Email: "a@x.io", Slots: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	updated.Slots[0] = 8

	found, _ := m.FindResponse(ctx, "e", "a@x.io")
	found.Slots[0] = 9
	list, _ := m.ListResponses(ctx, "e")
	list[0].Slots[0] = 10

	if got, _ := m.FindResponse(ctx, "e", "a@x.io"); len(got.Slots) != 1 || got.Slots[0] != 0 {
		t.Fatalf("stored slots changed through a returned record: %v", got.Slots)
	}
}

func TestMemoryRefusesSQL(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	if err := Migrate(context.Background(), m); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("migrate on memory = %v", err)
	}
	if err := m.QueryRow(context.Background(), "select 1").Scan(); err == nil {
		t.Fatalf("scan should fail")
	}
	var bound Repo
	err := m.Tx(context.Background(), func(q repokit.Queryer) error {
		bound = m.Bind(q)
		return nil
	})
	if err != nil || bound != Repo(m) {
		t.Fatalf("tx should hand out the store itself, got %v %v", bound, err)
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()
	s := Schema()
	for _, want := range []string{"create table if not exists events", "create table if not exists responses", "unique (event_id, email)", "on delete cascade"} {
		if !strings.Contains(strings.ToLower(s), want) {
			t.Fatalf("schema missing %q", want)
		}
	}
}

func TestMemoryPurge(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	ctx := context.Background()
	for _, id := range []string{"b", "a", "c"} {
		_, _ = m.CreateEvent(ctx, fullDay(id))
	}
	_, _, _ = m.UpsertResponse(ctx, domain.ResponseRecord{ID: "r", EventID: "a", Email: "x@y.z"})

	if ok, err := m.TryPurgeLock(ctx); !ok || err != nil {
		t.Fatalf("lock = %v %v", ok, err)
	}
	cutoff, _ := slots.ParseDate("2025-06-02")
	n, err := m.PurgeEndedBefore(ctx, cutoff, 2)
	if err != nil || n != 2 {
		t.Fatalf("purged %d, %v", n, err)
	}
	// ties on end date go by id
	if _, err := m.GetEvent(ctx, "c"); err != nil {
		t.Fatalf("c should survive the limit: %v", err)
	}
	if list, _ := m.ListResponses(ctx, "a"); len(list) != 0 {
		t.Fatalf("responses of purged events should go too")
	}
	if n, _ := m.PurgeEndedBefore(ctx, fullDay("").Grid.End, 10); n != 0 {
		t.Fatalf("events ending on the cutoff are kept, purged %d", n)
	}
}
