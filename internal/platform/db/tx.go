package db

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"hrrecords/internal/platform/querier"
)

type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner runs a unit of work in a single transaction. Stores pick the
// transaction up from the context through querier.From.
type TxRunner struct {
	db Beginner
}

func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := querier.TxFrom(ctx); ok {
		return fn(ctx)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(querier.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}
