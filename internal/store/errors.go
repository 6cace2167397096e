package store

import "errors"

// Error taxonomy of the persistence layer. Repositories wrap these with
// fmt.Errorf("...: %w", ...) so callers dispatch with errors.Is.
var (
	// ErrNotFound is returned when the requested identifier does not exist.
	// Expected absence: a missing record never surfaces as any other kind.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when the storage collaborator cannot be
	// reached or fails mid-operation. Not retried here; retrying is the
	// caller's responsibility.
	ErrUnavailable = errors.New("store unavailable")

	// ErrTransactionActive is returned by Begin when the context already
	// carries an open transaction. Programming error.
	ErrTransactionActive = errors.New("transaction already active")

	// ErrNoTransaction is returned by Commit or Rollback on a transaction
	// that has already finished. Programming error.
	ErrNoTransaction = errors.New("no active transaction")
)
