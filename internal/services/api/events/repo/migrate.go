package repo

import (
	"context"
	_ "embed"

	"meetgrid/internal/modkit/repokit"
	perr "meetgrid/internal/platform/errors"
)

//go:embed schema.sql
var schema string

// Schema returns the DDL Migrate applies
func Schema() string { return schema }

// Migrate creates the events tables if they are missing, safe to run on every boot
// pgx runs a multi statement string without arguments over the simple protocol
func Migrate(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return perr.FromPostgres(err, "migrate events schema")
	}
	return nil
}
