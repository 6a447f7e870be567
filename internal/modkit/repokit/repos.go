// Package repokit is the glue between services and their sql repos: the querier seams,
// binders that attach a repo to a pool or a tx, and transaction hooks
package repokit

import (
	"context"

	"meetgrid/internal/platform/store"
)

type (
	// Queryer is what a repo runs statements against, a pool or a tx
	Queryer = store.RowQuerier
	// TxRunner can also open transactions
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row
	Row = store.Row
	// CommandTag reports a write
	CommandTag = store.CommandTag
)

// WithTx runs fn in a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
