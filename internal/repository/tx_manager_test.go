package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/eaglebank/ledger-service/internal/store"
)

// Concurrent transfers that read and rewrite the same balance must not both
// commit, or money is created. Serializable isolation makes PostgreSQL
// reject the second writer instead.
func TestUnitsOfWorkRunSerializable(t *testing.T) {
	assert.Equal(t, sql.LevelSerializable, txOptions.Isolation)
	assert.False(t, txOptions.ReadOnly)
}

func TestSerializationConflictSurfacesAsUnavailable(t *testing.T) {
	err := infraError("commit transaction", &pq.Error{Code: pqSerializationFailure})
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Contains(t, err.Error(), "40001")
	assert.Contains(t, err.Error(), "concurrent transaction conflict")
}

func TestInfraErrorKeepsTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "pq error carries its SQLSTATE", err: &pq.Error{Code: "08006"}},
		{name: "plain driver error", err: fmt.Errorf("connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := infraError("fetch account", tt.err)
			assert.ErrorIs(t, mapped, store.ErrUnavailable)
			assert.False(t, errors.Is(mapped, store.ErrNotFound))
		})
	}
}
