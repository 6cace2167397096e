package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
	"github.com/eaglebank/ledger-service/internal/store/memory"
)

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	db := memory.NewDB()
	accounts := memory.NewAccountStore(db)
	tm := memory.NewTxManager(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(10)})
	require.NoError(t, err)

	err = store.WithinTx(ctx, tm, func(txCtx context.Context) error {
		acc, err := accounts.Fetch(txCtx, id)
		if err != nil {
			return err
		}
		acc.Balance = decimal.NewFromInt(25)
		return accounts.Update(txCtx, acc)
	})
	require.NoError(t, err)

	after, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(25)))
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db := memory.NewDB()
	accounts := memory.NewAccountStore(db)
	tm := memory.NewTxManager(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(10)})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithinTx(ctx, tm, func(txCtx context.Context) error {
		acc, err := accounts.Fetch(txCtx, id)
		if err != nil {
			return err
		}
		acc.Balance = decimal.NewFromInt(0)
		if err := accounts.Update(txCtx, acc); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(10)))
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	db := memory.NewDB()
	accounts := memory.NewAccountStore(db)
	tm := memory.NewTxManager(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(10)})
	require.NoError(t, err)

	assert.Panics(t, func() {
		_ = store.WithinTx(ctx, tm, func(txCtx context.Context) error {
			acc, _ := accounts.Fetch(txCtx, id)
			acc.Balance = decimal.NewFromInt(0)
			_ = accounts.Update(txCtx, acc)
			panic("mid-transaction failure")
		})
	})

	after, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(10)))
}

func TestWithinTxRejectsNestedScope(t *testing.T) {
	db := memory.NewDB()
	tm := memory.NewTxManager(db)

	err := store.WithinTx(context.Background(), tm, func(txCtx context.Context) error {
		return store.WithinTx(txCtx, tm, func(context.Context) error { return nil })
	})
	assert.ErrorIs(t, err, store.ErrTransactionActive)
}
