package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// RefundRepo persists refund claims and the cumulative user ledger.
type RefundRepo struct{ Pool PgxPool }

// NewRefundRepo constructs a RefundRepo with the given pool.
func NewRefundRepo(p PgxPool) *RefundRepo { return &RefundRepo{Pool: p} }

// Create inserts a claim. The partial unique index on live claims turns a
// concurrent duplicate into ErrConflict instead of a second row.
func (r *RefundRepo) Create(ctx domain.Context, req domain.RefundRequest) (string, error) {
	tracer := otel.Tracer("repo.refunds")
	ctx, span := tracer.Start(ctx, "refunds.Create")
	defer span.End()

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO refund_requests (id, milestone_id, task_id, user_id, amount, status, admin_notes, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, id, req.MilestoneID, req.TaskID, req.UserID, req.Amount, req.Status, req.AdminNotes, time.Now().UTC(), time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("op=refunds.create: %w", domain.ErrConflict)
		}
		return "", fmt.Errorf("op=refunds.create: %w", err)
	}
	return id, nil
}

// Get loads a claim by id.
func (r *RefundRepo) Get(ctx domain.Context, id string) (domain.RefundRequest, error) {
	tracer := otel.Tracer("repo.refunds")
	ctx, span := tracer.Start(ctx, "refunds.Get")
	defer span.End()
	q := `SELECT id, milestone_id, task_id, user_id, amount, status, admin_notes, created_at, updated_at FROM refund_requests WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var req domain.RefundRequest
	if err := row.Scan(&req.ID, &req.MilestoneID, &req.TaskID, &req.UserID, &req.Amount, &req.Status, &req.AdminNotes, &req.CreatedAt, &req.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.RefundRequest{}, fmt.Errorf("op=refunds.get: %w", domain.ErrNotFound)
		}
		return domain.RefundRequest{}, fmt.Errorf("op=refunds.get: %w", err)
	}
	return req, nil
}

// UpdateStatus moves a claim to a new state and stores the admin notes.
func (r *RefundRepo) UpdateStatus(ctx domain.Context, id string, status domain.RefundRequestStatus, adminNotes string) error {
	tracer := otel.Tracer("repo.refunds")
	ctx, span := tracer.Start(ctx, "refunds.UpdateStatus")
	defer span.End()
	q := `UPDATE refund_requests SET status=$2, admin_notes=$3, updated_at=$4 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, id, status, adminNotes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=refunds.update_status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=refunds.update_status: %w", domain.ErrNotFound)
	}
	return nil
}

// Complete flips an approved claim to completed and credits the user ledger
// in the same transaction. The guarded UPDATE makes replays no-ops: the
// ledger is credited only when this call performed the flip.
func (r *RefundRepo) Complete(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.refunds")
	ctx, span := tracer.Start(ctx, "refunds.Complete")
	defer span.End()

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=refunds.complete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	var userID string
	var amount int64
	flip := `UPDATE refund_requests SET status=$2, updated_at=$3 WHERE id=$1 AND status=$4 RETURNING user_id, amount`
	err = tx.QueryRow(ctx, flip, id, domain.RefundRequestCompleted, now, domain.RefundRequestApproved).Scan(&userID, &amount)
	if err == pgx.ErrNoRows {
		// already completed, or never approved; either way nothing to credit
		return nil
	}
	if err != nil {
		return fmt.Errorf("op=refunds.complete: %w", err)
	}

	credit := `INSERT INTO refund_ledgers (user_id, balance, updated_at) VALUES ($1,$2,$3)
	ON CONFLICT (user_id) DO UPDATE SET balance = refund_ledgers.balance + $2, updated_at = $3`
	if _, err := tx.Exec(ctx, credit, userID, amount, now); err != nil {
		return fmt.Errorf("op=refunds.complete_credit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=refunds.complete: %w", err)
	}
	return nil
}

// LedgerBalance returns the user's cumulative completed refund total.
func (r *RefundRepo) LedgerBalance(ctx domain.Context, userID string) (int64, error) {
	tracer := otel.Tracer("repo.refunds")
	ctx, span := tracer.Start(ctx, "refunds.LedgerBalance")
	defer span.End()
	q := `SELECT balance FROM refund_ledgers WHERE user_id=$1`
	var balance int64
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&balance); err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("op=refunds.ledger_balance: %w", err)
	}
	return balance, nil
}
