package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

// AccountRepository handles all state-mutating operations for accounts.
// It operates exclusively against the PostgreSQL write store (source of
// truth) and participates in any transaction carried by the context.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (int, error) {
	query := `
		INSERT INTO accounts (name, balance)
		VALUES ($1, $2)
		RETURNING id
	`
	err := executor(ctx, r.db).QueryRowContext(ctx, query, account.Name, account.Balance).Scan(&account.ID)
	if err != nil {
		return 0, infraError("create account", err)
	}
	return account.ID, nil
}

func (r *AccountRepository) Fetch(ctx context.Context, id int) (*models.Account, error) {
	query := `SELECT id, name, balance FROM accounts WHERE id = $1`
	var account models.Account
	err := executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.Balance,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, infraError("fetch account", err)
	}
	return &account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `UPDATE accounts SET name = $2, balance = $3 WHERE id = $1`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, account.ID, account.Name, account.Balance)
	if err != nil {
		return infraError("update account", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return infraError("update account: rows affected", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %d: %w", account.ID, store.ErrNotFound)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM accounts WHERE id = $1`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return infraError("delete account", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return infraError("delete account: rows affected", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %d: %w", id, store.ErrNotFound)
	}
	return nil
}

// FindByID is the domain-facing alias for Fetch.
func (r *AccountRepository) FindByID(ctx context.Context, id int) (*models.Account, error) {
	return r.Fetch(ctx, id)
}

// Save is the domain-facing alias for Update.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	return r.Update(ctx, account)
}
