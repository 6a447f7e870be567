package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetgrid/internal/platform/testkit"
)

type execTag struct{}

func (execTag) String() string      { return "SET" }
func (execTag) RowsAffected() int64 { return 0 }

// recorder is a TxRunner that logs statements instead of running them
type recorder struct{ sql []string }

func (r *recorder) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	r.sql = append(r.sql, sql)
	return execTag{}, nil
}
func (r *recorder) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (r *recorder) QueryRow(context.Context, string, ...any) Row        { return nil }
func (r *recorder) Tx(ctx context.Context, fn func(Queryer) error) error {
	r.sql = append(r.sql, "begin")
	if err := fn(r); err != nil {
		r.sql = append(r.sql, "rollback")
		return err
	}
	r.sql = append(r.sql, "commit")
	return nil
}

func TestBeginHooks(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	tx := WithBeginHooks(rec, StatementTimeout(1500*time.Millisecond), StatementTimeout(0))
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "insert")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"begin", "set local statement_timeout = 1500", "insert", "commit"}
	if len(rec.sql) != len(want) {
		t.Fatalf("statements = %q", rec.sql)
	}
	for i := range want {
		if rec.sql[i] != want[i] {
			t.Fatalf("statements = %q", rec.sql)
		}
	}
}

func TestBeginHookFailureRollsBack(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	boom := errors.New("boom")
	tx := WithBeginHooks(rec, func(context.Context, Queryer) error { return boom })
	called := false
	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if err != boom || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
	if WithBeginHooks(rec) != TxRunner(rec) {
		t.Fatalf("no hooks should return inner")
	}
}

type pingFn func(context.Context) error

func (f pingFn) Ping(ctx context.Context) error { return f(ctx) }

func TestMustPing(t *testing.T) {
	t.Parallel()
	MustPing(context.Background(), "pg", pingFn(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Errorf("ping should carry a deadline")
		}
		return nil
	}))
	testkit.MustPanic(t, func() {
		MustPing(context.Background(), "pg", pingFn(func(context.Context) error { return errors.New("down") }))
	})
	testkit.MustPanic(t, func() { MustBind[int](BindFunc[int](func(Queryer) int { return 1 }), nil) })
}
