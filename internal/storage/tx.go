package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Beginner is implemented by *sql.DB.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside a single database transaction.
//
// The transaction is committed when fn returns nil and rolled back when
// fn returns an error or panics, so the table is left exactly as it was
// before the call on every failure path. fn's error is returned as is
// (a failed rollback is joined to it) so callers can still match
// ErrNotFound and ErrDuplicate with errors.Is.
func WithTx(ctx context.Context, db Beginner, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("WithTx: begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("WithTx: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("WithTx: commit: %w", err)
	}
	return nil
}
