// Package memory is an in-process persistence provider. It backs tests and
// any deployment that does not need durability, and implements the same
// Store and TxManager contracts as the PostgreSQL provider: mutex-guarded
// tables with auto-increment identifiers and snapshot/restore transactions.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

type table[T any] struct {
	records map[int]T
	nextID  int
}

func newTable[T any]() table[T] {
	return table[T]{records: map[int]T{}}
}

func (t table[T]) clone() table[T] {
	return table[T]{records: maps.Clone(t.records), nextID: t.nextID}
}

// DB holds all in-memory tables behind one mutex. A transaction holds the
// mutex for its whole scope, so transactions are serialised and no reader
// ever observes an uncommitted write.
type DB struct {
	mu          sync.Mutex
	students    table[models.StudentRecord]
	accounts    table[models.Account]
	unavailable bool
}

// NewDB creates an empty in-memory database.
func NewDB() *DB {
	return &DB{
		students: newTable[models.StudentRecord](),
		accounts: newTable[models.Account](),
	}
}

// SetUnavailable toggles simulated outage: every subsequent operation and
// Begin fails with store.ErrUnavailable. Must not be called while a
// transaction is open.
func (db *DB) SetUnavailable(v bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.unavailable = v
}

type txKey struct{}

func txFromContext(ctx context.Context) *Tx {
	tx, _ := ctx.Value(txKey{}).(*Tx)
	return tx
}

// enter prepares an operation: inside a transaction on this DB the mutex is
// already held and release is a no-op, otherwise the mutex is taken for the
// single call.
func (db *DB) enter(ctx context.Context) (release func(), err error) {
	if tx := txFromContext(ctx); tx != nil && tx.db == db {
		if tx.done {
			return nil, store.ErrNoTransaction
		}
		return func() {}, nil
	}
	db.mu.Lock()
	if db.unavailable {
		db.mu.Unlock()
		return nil, store.ErrUnavailable
	}
	return db.mu.Unlock, nil
}

// Collection adapts one table of the DB to the generic store.Store contract.
type Collection[T any] struct {
	db    *DB
	tbl   *table[T]
	kind  string
	getID func(*T) int
	setID func(*T, int)
}

// NewStudentStore returns the student table as a store.Store.
func NewStudentStore(db *DB) *Collection[models.StudentRecord] {
	return &Collection[models.StudentRecord]{
		db:    db,
		tbl:   &db.students,
		kind:  "student",
		getID: func(r *models.StudentRecord) int { return r.ID },
		setID: func(r *models.StudentRecord, id int) { r.ID = id },
	}
}

// NewAccountStore returns the account table as a store.Store.
func NewAccountStore(db *DB) *Collection[models.Account] {
	return &Collection[models.Account]{
		db:    db,
		tbl:   &db.accounts,
		kind:  "account",
		getID: func(a *models.Account) int { return a.ID },
		setID: func(a *models.Account, id int) { a.ID = id },
	}
}

func (c *Collection[T]) Create(ctx context.Context, record *T) (int, error) {
	release, err := c.db.enter(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	c.tbl.nextID++
	id := c.tbl.nextID
	c.setID(record, id)
	c.tbl.records[id] = *record
	return id, nil
}

func (c *Collection[T]) Fetch(ctx context.Context, id int) (*T, error) {
	release, err := c.db.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	record, ok := c.tbl.records[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", c.kind, id, store.ErrNotFound)
	}
	return &record, nil
}

func (c *Collection[T]) Update(ctx context.Context, record *T) error {
	release, err := c.db.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	id := c.getID(record)
	if _, ok := c.tbl.records[id]; !ok {
		return fmt.Errorf("%s %d: %w", c.kind, id, store.ErrNotFound)
	}
	c.tbl.records[id] = *record
	return nil
}

// FindByID is the domain-facing alias for Fetch.
func (c *Collection[T]) FindByID(ctx context.Context, id int) (*T, error) {
	return c.Fetch(ctx, id)
}

// Save is the domain-facing alias for Update.
func (c *Collection[T]) Save(ctx context.Context, record *T) error {
	return c.Update(ctx, record)
}

func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	release, err := c.db.enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	if _, ok := c.tbl.records[id]; !ok {
		return fmt.Errorf("%s %d: %w", c.kind, id, store.ErrNotFound)
	}
	delete(c.tbl.records, id)
	return nil
}

// TxManager opens serialised units of work over a DB.
type TxManager struct {
	db *DB
}

func NewTxManager(db *DB) *TxManager {
	return &TxManager{db: db}
}

// Begin locks the DB for the whole unit of work and snapshots every table so
// Rollback can restore them exactly.
func (m *TxManager) Begin(ctx context.Context) (context.Context, store.Tx, error) {
	if txFromContext(ctx) != nil {
		return ctx, nil, store.ErrTransactionActive
	}
	m.db.mu.Lock()
	if m.db.unavailable {
		m.db.mu.Unlock()
		return ctx, nil, store.ErrUnavailable
	}
	tx := &Tx{
		db:            m.db,
		savedStudents: m.db.students.clone(),
		savedAccounts: m.db.accounts.clone(),
	}
	return context.WithValue(ctx, txKey{}, tx), tx, nil
}

// Tx is an open in-memory transaction. It owns the DB mutex until Commit or
// Rollback.
type Tx struct {
	db            *DB
	done          bool
	savedStudents table[models.StudentRecord]
	savedAccounts table[models.Account]
}

func (t *Tx) Commit() error {
	if t.done {
		return store.ErrNoTransaction
	}
	t.done = true
	t.db.mu.Unlock()
	return nil
}

func (t *Tx) Rollback() error {
	if t.done {
		return store.ErrNoTransaction
	}
	t.done = true
	t.db.students = t.savedStudents
	t.db.accounts = t.savedAccounts
	t.db.mu.Unlock()
	return nil
}
