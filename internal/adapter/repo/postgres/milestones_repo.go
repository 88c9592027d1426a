package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// MilestoneRepo persists and loads daily milestones.
type MilestoneRepo struct{ Pool PgxPool }

// NewMilestoneRepo constructs a MilestoneRepo with the given pool.
func NewMilestoneRepo(p PgxPool) *MilestoneRepo { return &MilestoneRepo{Pool: p} }

const milestoneColumns = `id, task_id, day_number, target_date, required_words, words_carried_forward, words_written, status, evaluation_status, content_quality_score, ai_feedback, words_deficit, next_day_target, flagged_for_review, refund_amount, refund_status, created_at, updated_at`

// CreateBatch inserts the full schedule for a task in one transaction.
func (r *MilestoneRepo) CreateBatch(ctx domain.Context, ms []domain.DailyMilestone) error {
	tracer := otel.Tracer("repo.milestones")
	ctx, span := tracer.Start(ctx, "milestones.CreateBatch")
	defer span.End()

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=milestones.create_batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := `INSERT INTO daily_milestones (` + milestoneColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`
	for _, m := range ms {
		id := m.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.Exec(ctx, q, id, m.TaskID, m.DayNumber, m.TargetDate, m.RequiredWords, m.WordsCarriedForward, m.WordsWritten, m.Status, m.EvaluationStatus, m.ContentQualityScore, m.AIFeedback, m.WordsDeficit, m.NextDayTarget, m.FlaggedForReview, m.RefundAmount, m.RefundStatus, time.Now().UTC(), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("op=milestones.create_batch day=%d: %w", m.DayNumber, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=milestones.create_batch: %w", err)
	}
	return nil
}

// Get loads the milestone for one (task, day).
func (r *MilestoneRepo) Get(ctx domain.Context, taskID string, dayNumber int) (domain.DailyMilestone, error) {
	tracer := otel.Tracer("repo.milestones")
	ctx, span := tracer.Start(ctx, "milestones.Get")
	defer span.End()
	q := `SELECT ` + milestoneColumns + ` FROM daily_milestones WHERE task_id=$1 AND day_number=$2`
	return r.scanOne(r.Pool.QueryRow(ctx, q, taskID, dayNumber), "milestones.get")
}

// GetByID loads a milestone by primary key.
func (r *MilestoneRepo) GetByID(ctx domain.Context, id string) (domain.DailyMilestone, error) {
	tracer := otel.Tracer("repo.milestones")
	ctx, span := tracer.Start(ctx, "milestones.GetByID")
	defer span.End()
	q := `SELECT ` + milestoneColumns + ` FROM daily_milestones WHERE id=$1`
	return r.scanOne(r.Pool.QueryRow(ctx, q, id), "milestones.get_by_id")
}

// ListByTask returns the task's milestones ordered by day.
func (r *MilestoneRepo) ListByTask(ctx domain.Context, taskID string) ([]domain.DailyMilestone, error) {
	tracer := otel.Tracer("repo.milestones")
	ctx, span := tracer.Start(ctx, "milestones.ListByTask")
	defer span.End()
	q := `SELECT ` + milestoneColumns + ` FROM daily_milestones WHERE task_id=$1 ORDER BY day_number`
	rows, err := r.Pool.Query(ctx, q, taskID)
	if err != nil {
		return nil, fmt.Errorf("op=milestones.list: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyMilestone
	for rows.Next() {
		m, err := r.scanOne(rows, "milestones.list")
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=milestones.list: %w", err)
	}
	return out, nil
}

// Update overwrites the milestone row; last writer wins.
func (r *MilestoneRepo) Update(ctx domain.Context, m domain.DailyMilestone) error {
	tracer := otel.Tracer("repo.milestones")
	ctx, span := tracer.Start(ctx, "milestones.Update")
	defer span.End()
	q := `UPDATE daily_milestones SET words_carried_forward=$2, words_written=$3, status=$4, evaluation_status=$5, content_quality_score=$6, ai_feedback=$7, words_deficit=$8, next_day_target=$9, flagged_for_review=$10, refund_amount=$11, refund_status=$12, updated_at=$13 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, m.ID, m.WordsCarriedForward, m.WordsWritten, m.Status, m.EvaluationStatus, m.ContentQualityScore, m.AIFeedback, m.WordsDeficit, m.NextDayTarget, m.FlaggedForReview, m.RefundAmount, m.RefundStatus, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=milestones.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=milestones.update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *MilestoneRepo) scanOne(row pgx.Row, op string) (domain.DailyMilestone, error) {
	var m domain.DailyMilestone
	err := row.Scan(&m.ID, &m.TaskID, &m.DayNumber, &m.TargetDate, &m.RequiredWords, &m.WordsCarriedForward, &m.WordsWritten, &m.Status, &m.EvaluationStatus, &m.ContentQualityScore, &m.AIFeedback, &m.WordsDeficit, &m.NextDayTarget, &m.FlaggedForReview, &m.RefundAmount, &m.RefundStatus, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.DailyMilestone{}, fmt.Errorf("op=%s: %w", op, domain.ErrNotFound)
		}
		return domain.DailyMilestone{}, fmt.Errorf("op=%s: %w", op, err)
	}
	return m, nil
}
