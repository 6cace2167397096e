package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/eaglebank/ledger-service/internal/store"
)

// DBTX is the executor shared by *sql.DB and *sql.Tx. Repositories resolve
// it per call so the same code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type txKey struct{}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// executor returns the open transaction carried by ctx, or the plain
// connection pool when the call is outside any transaction scope.
func executor(ctx context.Context, db *sql.DB) DBTX {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

// pqSerializationFailure is the SQLSTATE PostgreSQL raises when a
// serializable transaction conflicts with a concurrent one.
const pqSerializationFailure = "40001"

// infraError maps a driver failure into the store taxonomy. Everything that
// is not expected absence is a store-unavailable outcome; the pq SQLSTATE is
// kept in the message when present.
func infraError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pqSerializationFailure {
			return fmt.Errorf("%s: %w: pq %s: concurrent transaction conflict: %v", op, store.ErrUnavailable, pqErr.Code, err)
		}
		return fmt.Errorf("%s: %w: pq %s: %v", op, store.ErrUnavailable, pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
}

// txOptions runs every unit of work at serializable isolation. Two transfers
// that read and rewrite the same account balance cannot both commit; the
// loser fails with SQLSTATE 40001, surfaced as store.ErrUnavailable for the
// caller to retry.
var txOptions = &sql.TxOptions{Isolation: sql.LevelSerializable}

// TxManager demarcates units of work over the PostgreSQL write store.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// Begin opens a transaction and returns a derived context that routes all
// repository calls through it until Commit or Rollback.
func (m *TxManager) Begin(ctx context.Context) (context.Context, store.Tx, error) {
	if txFromContext(ctx) != nil {
		return ctx, nil, store.ErrTransactionActive
	}
	tx, err := m.db.BeginTx(ctx, txOptions)
	if err != nil {
		return ctx, nil, infraError("begin transaction", err)
	}
	return context.WithValue(ctx, txKey{}, tx), &sqlTx{tx: tx}, nil
}

type sqlTx struct {
	tx   *sql.Tx
	done bool
}

func (t *sqlTx) Commit() error {
	if t.done {
		return store.ErrNoTransaction
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return store.ErrNoTransaction
		}
		return infraError("commit transaction", err)
	}
	return nil
}

func (t *sqlTx) Rollback() error {
	if t.done {
		return store.ErrNoTransaction
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return store.ErrNoTransaction
		}
		return infraError("rollback transaction", err)
	}
	return nil
}
