// Package store defines the persistence contracts the ledger core is built
// on: a generic keyed Store for entity CRUD and a TxManager that demarcates
// atomic units of work. Providers live in internal/repository (PostgreSQL)
// and internal/store/memory (in-process fake).
package store

import "context"

// Store is generic keyed persistence for a record type T with identifier
// type ID. Outside an explicit transaction every call is atomic and its
// effect immediately visible to subsequent calls.
type Store[ID comparable, T any] interface {
	// Create assigns a new unique identifier, persists the record and
	// returns the identifier. The record's identifier field is set in place.
	Create(ctx context.Context, record *T) (ID, error)

	// Fetch returns the current persisted value, or ErrNotFound.
	Fetch(ctx context.Context, id ID) (*T, error)

	// Update replaces the persisted value in place. The record must carry a
	// previously assigned identifier; ErrNotFound if it no longer exists.
	Update(ctx context.Context, record *T) error

	// Delete removes the record, or ErrNotFound if absent.
	Delete(ctx context.Context, id ID) error
}

// Tx is an open unit of work. Exactly one of Commit or Rollback succeeds;
// any further call returns ErrNoTransaction.
type Tx interface {
	Commit() error
	Rollback() error
}

// TxManager opens units of work. The returned context carries the open
// transaction; Store calls made with it are provisional until Commit.
type TxManager interface {
	Begin(ctx context.Context) (context.Context, Tx, error)
}

// WithinTx runs fn inside a transaction scope with guaranteed
// rollback-on-error release: commit on nil error, rollback when fn returns
// an error or panics. A commit never happens on an error path.
func WithinTx(ctx context.Context, tm TxManager, fn func(ctx context.Context) error) error {
	txCtx, tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
