package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// RunInTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on error or panic.
func RunInTx(ctx context.Context, db *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, fn); err != nil {
		return fmt.Errorf("transaction: %w", err)
	}
	return nil
}
