package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCode(t *testing.T) {
	t.Parallel()
	cases := map[ErrorCode]int{
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Fatalf("HTTPStatusCode(%v) = %d want %d", code, got, want)
		}
	}
}

func TestWithFieldKeepsIdentity(t *testing.T) {
	t.Parallel()
	err := WithField(ErrNotFound, "id")
	if !stderrs.Is(err, ErrNotFound) {
		t.Fatalf("copy should still match the sentinel")
	}
	if e, _ := As(err); e.Field() != "id" {
		t.Fatalf("field = %q", e.Field())
	}
	if e, _ := As(ErrNotFound); e.Field() != "" {
		t.Fatalf("sentinel mutated")
	}
	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatalf("foreign errors pass through")
	}
}

func TestWrapAndWire(t *testing.T) {
	t.Parallel()
	cause := stderrs.New("connection reset")
	err := fmt.Errorf("outer: %w", Wrap(cause, ErrorCodeUnavailable, "db down"))
	if CodeOf(err) != ErrorCodeUnavailable || HTTPStatus(err) != http.StatusServiceUnavailable {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if Root(err) != cause {
		t.Fatalf("root = %v", Root(err))
	}
	w := WireFrom(err)
	if w.Message != "db down" {
		t.Fatalf("wire should not leak the cause, got %q", w.Message)
	}
	if got := WireFrom(stderrs.New("x")); got.Code != ErrorCodeUnknown {
		t.Fatalf("foreign wire code = %v", got.Code)
	}
	if status, _ := HTTP(nil); status != http.StatusOK {
		t.Fatalf("nil status = %d", status)
	}
}

func TestInvalid(t *testing.T) {
	t.Parallel()
	err := Invalid("email", "bad %s", "address")
	e, ok := As(err)
	if !ok || e.Code() != ErrorCodeValidation || e.Field() != "email" || e.Error() != "bad address" {
		t.Fatalf("Invalid = %#v", err)
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("nil has no code")
	}
}

func TestFromPostgres(t *testing.T) {
	t.Parallel()
	dup := &pgconn.PgError{Code: "23505", TableName: "responses", ConstraintName: "responses_event_id_email_key"}
	err := FromPostgresWithField(fmt.Errorf("exec: %w", dup), "upsert response")
	if !IsCode(err, ErrorCodeDuplicateKey) || !IsDuplicateKey(err) {
		t.Fatalf("dup code = %v", CodeOf(err))
	}
	if e, _ := As(err); e.Field() != "event_id_email" {
		t.Fatalf("field = %q", e.Field())
	}

	fk := &pgconn.PgError{Code: "23503", ColumnName: "event_id"}
	err = FromPostgresWithField(fk, "insert")
	if !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("fk code = %v", CodeOf(err))
	}
	if e, _ := As(err); e.Field() != "event_id" {
		t.Fatalf("column should win, got %q", e.Field())
	}

	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil in nil out")
	}
	if !IsCode(FromPostgres(stderrs.New("eof"), "x"), ErrorCodeDB) {
		t.Fatalf("non driver errors default to db")
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&pgconn.PgError{Code: "40001"}, true},
		{&pgconn.PgError{Code: "40P01"}, true},
		{&pgconn.PgError{Code: "23505"}, false},
		{stderrs.New("commit unexpectedly resulted in rollback"), true},
		{fmt.Errorf("wrapped: %w", context.Canceled), false},
	}
	for i, c := range cases {
		if got := Retryable(c.err); got != c.want {
			t.Fatalf("case %d Retryable(%v) = %v", i, c.err, got)
		}
	}
	if !Timeout(&pgconn.PgError{Code: "57014"}) {
		t.Fatalf("statement timeout not detected")
	}
}
