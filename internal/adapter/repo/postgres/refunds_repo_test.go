package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zawlinnphyo/wordstake/internal/adapter/repo/postgres"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

func TestRefundRepo_CreateMapsUniqueViolationToConflict(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "idx_refund_requests_live"}}
	repo := postgres.NewRefundRepo(pool)
	_, err := repo.Create(context.Background(), domain.RefundRequest{MilestoneID: "m-1"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRefundRepo_CreateOtherErrorIsNotConflict(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execErr: &pgconn.PgError{Code: "23503"}}
	repo := postgres.NewRefundRepo(pool)
	_, err := repo.Create(context.Background(), domain.RefundRequest{MilestoneID: "m-1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestRefundRepo_GetNotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewRefundRepo(pool)
	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRefundRepo_LedgerBalanceDefaultsToZero(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewRefundRepo(pool)
	bal, err := repo.LedgerBalance(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Zero(t, bal)
}
