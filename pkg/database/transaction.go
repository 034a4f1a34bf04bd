package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxFunc is the function type executed inside a transaction
type TxFunc func(pgx.Tx) error

// TxManager scopes a unit of work to a single database transaction.
// Services depend on this interface so tests can substitute a fake that
// runs the function without a real connection.
type TxManager interface {
	// WithinTransaction begins a transaction, executes fn, and commits.
	// Any error from fn (or a panic) rolls the transaction back; the two
	// outcomes are all-or-nothing.
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a TxManager backed by a pgx connection pool
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

// WithinTransaction wraps a function in a transaction.
// Auto rollback on error or panic, auto commit on success.
func (m *pgxTxManager) WithinTransaction(ctx context.Context, fn TxFunc) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Deferred rollback is a no-op once the transaction committed
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p) // re-throw
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = fn(tx)
	if err != nil {
		return err // defer rolls back
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
