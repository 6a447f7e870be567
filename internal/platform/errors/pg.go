package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the store reacts to
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgStringTooLong        = "22001"
	pgInvalidText          = "22P02"
	pgSerializationFailure = "40001"
	pgDeadlock             = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgReadOnly             = "25006"
	pgCannotConnectNow     = "57P03"
)

// PgError returns the driver error at the bottom of err, if there is one
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isState(err error, state string) bool {
	p, ok := PgError(err)
	return ok && p.Code == state
}

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool { return isState(err, pgUniqueViolation) }

// IsForeignKeyViolation reports a reference to a missing row
func IsForeignKeyViolation(err error) bool { return isState(err, pgForeignKeyViolation) }

// PgCode maps a driver error onto an ErrorCode, ok is false for non driver errors
func PgCode(err error) (code ErrorCode, ok bool) {
	p, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch p.Code {
	case pgUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgForeignKeyViolation:
		// the parent row is gone, usually a deleted event
		return ErrorCodeNotFound, true
	case pgNotNullViolation, pgCheckViolation:
		return ErrorCodeValidation, true
	case pgStringTooLong, pgInvalidText:
		return ErrorCodeInvalidArgument, true
	case pgReadOnly, pgCannotConnectNow:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with msg and the mapped code, nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := PgCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresWithField is FromPostgres plus the column the server blamed
// constraint names are used as a fallback, events_title_check -> title
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	p, ok := PgError(err)
	if !ok {
		return out
	}
	if col := strings.TrimSpace(p.ColumnName); col != "" {
		return WithField(out, col)
	}
	if f := fieldFromConstraint(p.TableName, p.ConstraintName); f != "" {
		return WithField(out, f)
	}
	return out
}

func fieldFromConstraint(table, constraint string) string {
	c := strings.TrimPrefix(constraint, table+"_")
	for _, suffix := range []string{"_check", "_key", "_fkey", "_pkey"} {
		if strings.HasSuffix(c, suffix) {
			c = strings.TrimSuffix(c, suffix)
			break
		}
	}
	if c == constraint || c == "" {
		return ""
	}
	return c
}

// Retryable reports a transient database condition where running the transaction
// again may succeed. Local cancellation is never retryable
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if p, ok := PgError(err); ok {
		switch p.Code {
		case pgSerializationFailure, pgDeadlock, pgLockNotAvailable:
			return true
		}
		return false
	}
	return strings.Contains(strings.ToLower(Root(err).Error()), "commit unexpectedly resulted in rollback")
}

// Timeout reports a statement killed by statement_timeout
func Timeout(err error) bool { return isState(err, pgQueryCanceled) }
