package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

type txKey struct{}

func txFromContext(ctx context.Context) (bun.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	return tx, ok
}

// WithTx runs fn in a transaction. The transaction rides on the context,
// so repositories called from fn transparently use it via Client.DB.
// Bun commits when fn returns nil and rolls back otherwise.
func (c *Client) WithTx(ctx context.Context, fn TxFunc) error {
	// fn's error is returned untouched so typed domain errors survive
	// the layer boundary.
	return c.bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
