// Package repokit holds the shared vocabulary of repository code
package repokit

import (
	"context"

	"aidetector/internal/platform/store"
)

type (
	// Queryer is what a bound repository queries through
	Queryer = store.RowQuerier
	// TxRunner opens transactions
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row
	Row = store.Row
	// CommandTag is a write result
	CommandTag = store.CommandTag
)

// WithTx runs fn in a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
