package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *stubTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type stubBeginner struct {
	tx       *stubTx
	beginErr error
}

func (b *stubBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTx_Commit(t *testing.T) {
	t.Parallel()

	db := &stubBeginner{tx: &stubTx{}}

	err := withTx(t.Context(), db, func(ctx context.Context, tx pgx.Tx) error {
		return nil
	})
	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	t.Parallel()

	db := &stubBeginner{tx: &stubTx{}}
	cause := errors.New("outbox write failed")

	err := withTx(t.Context(), db, func(ctx context.Context, tx pgx.Tx) error {
		return cause
	})
	require.ErrorIs(t, err, cause)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()

	db := &stubBeginner{tx: &stubTx{}}

	assert.PanicsWithValue(t, "boom", func() {
		_ = withTx(t.Context(), db, func(ctx context.Context, tx pgx.Tx) error {
			panic("boom")
		})
	})
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_CommitErrorSurfaces(t *testing.T) {
	t.Parallel()

	commitErr := errors.New("commit failed")
	db := &stubBeginner{tx: &stubTx{commitErr: commitErr}}

	err := withTx(t.Context(), db, func(ctx context.Context, tx pgx.Tx) error {
		return nil
	})
	require.ErrorIs(t, err, commitErr)
}

func TestWithTx_BeginError(t *testing.T) {
	t.Parallel()

	db := &stubBeginner{beginErr: errors.New("pool exhausted")}

	err := withTx(t.Context(), db, func(ctx context.Context, tx pgx.Tx) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	require.Error(t, err)
}
