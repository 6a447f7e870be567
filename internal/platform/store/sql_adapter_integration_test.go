//go:build integration_pg

package store_test

import (
	"context"
	"errors"
	"testing"

	perr "meetgrid/internal/platform/errors"
	"meetgrid/internal/platform/store"
	"meetgrid/internal/platform/store/pgtest"
)

func TestAdapterAgainstPostgres(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()

	if err := st.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if _, err := st.PG.Exec(ctx, `create table kv (k text primary key, v int not null)`); err != nil {
		t.Fatal(err)
	}

	// committed
	err := st.PG.Tx(ctx, func(q store.RowQuerier) error {
		_, err := q.Exec(ctx, `insert into kv values ('a', 1), ('b', 2)`)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	// rolled back
	boom := errors.New("boom")
	err = st.PG.Tx(ctx, func(q store.RowQuerier) error {
		if _, err := q.Exec(ctx, `insert into kv values ('c', 3)`); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("tx err = %v", err)
	}

	n, err := store.Scalar[int](ctx, st.PG, `select count(*) from kv`)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v", n, err)
	}

	_, err = store.Scalar[int](ctx, st.PG, `select v from kv where k = 'zzz'`)
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("missing row should map to not found, got %v", err)
	}

	_, err = st.PG.Exec(ctx, `insert into kv values ('a', 9)`)
	if !perr.IsDuplicateKey(err) {
		t.Fatalf("duplicate insert = %v", err)
	}

	if err := store.ExecOne(ctx, st.PG, `delete from kv where k = 'nope'`); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("ExecOne on nothing = %v", err)
	}
}
