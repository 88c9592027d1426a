// Package postgres implements the persistence ports on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TaskRepo persists and loads tasks using a minimal pgx pool.
type TaskRepo struct{ Pool PgxPool }

// NewTaskRepo constructs a TaskRepo with the given pool.
func NewTaskRepo(p PgxPool) *TaskRepo { return &TaskRepo{Pool: p} }

// Create inserts a new task and returns its id (generates one if empty).
func (r *TaskRepo) Create(ctx domain.Context, t domain.Task) (string, error) {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "tasks"),
	)
	id := t.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO tasks (id, user_id, title, total_words, duration_days, deposit_amount, status, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, id, t.UserID, t.Title, t.TotalWords, t.DurationDays, t.DepositAmount, t.Status, time.Now().UTC(), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=tasks.create: %w", err)
	}
	return id, nil
}

// Get loads a task by id.
func (r *TaskRepo) Get(ctx domain.Context, id string) (domain.Task, error) {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.Get")
	defer span.End()
	q := `SELECT id, user_id, title, total_words, duration_days, deposit_amount, status, created_at, updated_at FROM tasks WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.TotalWords, &t.DurationDays, &t.DepositAmount, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Task{}, fmt.Errorf("op=tasks.get: %w", domain.ErrNotFound)
		}
		return domain.Task{}, fmt.Errorf("op=tasks.get: %w", err)
	}
	return t, nil
}

// UpdateStatus updates a task's lifecycle status.
func (r *TaskRepo) UpdateStatus(ctx domain.Context, id string, status domain.TaskStatus) error {
	tracer := otel.Tracer("repo.tasks")
	ctx, span := tracer.Start(ctx, "tasks.UpdateStatus")
	defer span.End()
	q := `UPDATE tasks SET status=$2, updated_at=$3 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=tasks.update_status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=tasks.update_status: %w", domain.ErrNotFound)
	}
	return nil
}
