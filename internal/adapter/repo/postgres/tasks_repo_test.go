package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zawlinnphyo/wordstake/internal/adapter/repo/postgres"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

func TestTaskRepo_CreateGeneratesID(t *testing.T) {
	t.Parallel()
	repo := postgres.NewTaskRepo(&poolStub{})
	id, err := repo.Create(context.Background(), domain.Task{UserID: "u-1", Title: "Novel"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestTaskRepo_CreateKeepsGivenID(t *testing.T) {
	t.Parallel()
	repo := postgres.NewTaskRepo(&poolStub{})
	id, err := repo.Create(context.Background(), domain.Task{ID: "fixed", UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestTaskRepo_CreateExecError(t *testing.T) {
	t.Parallel()
	repo := postgres.NewTaskRepo(&poolStub{execErr: errors.New("db down")})
	_, err := repo.Create(context.Background(), domain.Task{UserID: "u-1"})
	require.Error(t, err)
}

func TestTaskRepo_GetNotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewTaskRepo(pool)
	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMilestoneRepo_GetNotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewMilestoneRepo(pool)
	_, err := repo.Get(context.Background(), "task-1", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentRepo_GetNotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewContentRepo(pool)
	_, err := repo.Get(context.Background(), "task-1", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
