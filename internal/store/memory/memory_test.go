package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

func TestCreateFetchRoundTrip(t *testing.T) {
	db := NewDB()
	students := NewStudentStore(db)
	ctx := context.Background()

	record := &models.StudentRecord{Name: "Alice", Course: "Java"}
	id, err := students.Create(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)

	fetched, err := students.Fetch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *record, *fetched)
}

func TestFetchMissingIsNotFound(t *testing.T) {
	db := NewDB()
	students := NewStudentStore(db)

	_, err := students.Fetch(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateReplacesInPlace(t *testing.T) {
	db := NewDB()
	students := NewStudentStore(db)
	ctx := context.Background()

	record := &models.StudentRecord{Name: "Alice", Course: "Java"}
	id, err := students.Create(ctx, record)
	require.NoError(t, err)

	record.Course = "Spring Boot"
	require.NoError(t, students.Update(ctx, record))

	fetched, err := students.Fetch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Spring Boot", fetched.Course)
}

func TestUpdateAfterDeleteIsNotFound(t *testing.T) {
	db := NewDB()
	students := NewStudentStore(db)
	ctx := context.Background()

	record := &models.StudentRecord{Name: "Alice", Course: "Java"}
	id, err := students.Create(ctx, record)
	require.NoError(t, err)

	require.NoError(t, students.Delete(ctx, id))
	assert.ErrorIs(t, students.Update(ctx, record), store.ErrNotFound)
	assert.ErrorIs(t, students.Delete(ctx, id), store.ErrNotFound)
}

func TestFetchReturnsCopy(t *testing.T) {
	db := NewDB()
	accounts := NewAccountStore(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)

	first, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	first.Balance = decimal.NewFromInt(0)

	second, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(100)))
}

func TestTxCommitMakesWritesDurable(t *testing.T) {
	db := NewDB()
	accounts := NewAccountStore(db)
	tm := NewTxManager(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)

	txCtx, tx, err := tm.Begin(ctx)
	require.NoError(t, err)
	acc, err := accounts.Fetch(txCtx, id)
	require.NoError(t, err)
	acc.Balance = decimal.NewFromInt(70)
	require.NoError(t, accounts.Update(txCtx, acc))
	require.NoError(t, tx.Commit())

	after, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(70)))
}

func TestTxRollbackIsExact(t *testing.T) {
	db := NewDB()
	accounts := NewAccountStore(db)
	tm := NewTxManager(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)

	txCtx, tx, err := tm.Begin(ctx)
	require.NoError(t, err)
	acc, err := accounts.Fetch(txCtx, id)
	require.NoError(t, err)
	acc.Balance = decimal.NewFromInt(1)
	require.NoError(t, accounts.Update(txCtx, acc))
	_, err = accounts.Create(txCtx, &models.Account{Name: "B", Balance: decimal.NewFromInt(5)})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	after, err := accounts.Fetch(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(100)))
	_, err = accounts.Fetch(ctx, id+1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBeginWhileActiveFails(t *testing.T) {
	db := NewDB()
	tm := NewTxManager(db)

	txCtx, tx, err := tm.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	_, _, err = tm.Begin(txCtx)
	assert.ErrorIs(t, err, store.ErrTransactionActive)
}

func TestFinishedTxRejectsFurtherCalls(t *testing.T) {
	db := NewDB()
	tm := NewTxManager(db)

	_, tx, err := tm.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.ErrorIs(t, tx.Commit(), store.ErrNoTransaction)
	assert.ErrorIs(t, tx.Rollback(), store.ErrNoTransaction)
}

func TestUnavailableSurfacesOnEveryOperation(t *testing.T) {
	db := NewDB()
	students := NewStudentStore(db)
	tm := NewTxManager(db)
	db.SetUnavailable(true)
	ctx := context.Background()

	_, err := students.Create(ctx, &models.StudentRecord{Name: "Alice"})
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = students.Fetch(ctx, 1)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, _, err = tm.Begin(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestFindByIDAndSaveMatchRepositoryVocabulary(t *testing.T) {
	db := NewDB()
	accounts := NewAccountStore(db)
	ctx := context.Background()

	id, err := accounts.Create(ctx, &models.Account{Name: "A", Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)

	account, err := accounts.FindByID(ctx, id)
	require.NoError(t, err)
	account.Balance = decimal.NewFromInt(60)
	require.NoError(t, accounts.Save(ctx, account))

	saved, err := accounts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, saved.Balance.Equal(decimal.NewFromInt(60)))

	_, err = accounts.FindByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
