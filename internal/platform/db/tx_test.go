package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxUsesReadCommitted(t *testing.T) {
	assert.Equal(t, pgx.ReadCommitted, txOptions.IsoLevel)
}

func TestClassifyTxErrorConflicts(t *testing.T) {
	for _, code := range []string{"40001", "40P01"} {
		t.Run(code, func(t *testing.T) {
			cause := &pgconn.PgError{Code: code}
			err := classifyTxError(fmt.Errorf("inventory: adjust: %w", cause))
			require.ErrorIs(t, err, ErrTxConflict)
			var pgErr *pgconn.PgError
			require.ErrorAs(t, err, &pgErr)
			assert.Equal(t, code, pgErr.Code)
		})
	}
}

func TestClassifyTxErrorPassesThrough(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	require.NotErrorIs(t, classifyTxError(unique), ErrTxConflict)

	boom := errors.New("boom")
	require.Same(t, boom, classifyTxError(boom))
}
