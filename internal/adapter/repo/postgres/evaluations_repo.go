package postgres

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// EvaluationRepo appends and reads the immutable audit log. Record ids are
// ULIDs so the log sorts chronologically by primary key.
type EvaluationRepo struct{ Pool PgxPool }

// NewEvaluationRepo constructs an EvaluationRepo with the given pool.
func NewEvaluationRepo(p PgxPool) *EvaluationRepo { return &EvaluationRepo{Pool: p} }

// Append inserts an audit record and returns its id.
func (r *EvaluationRepo) Append(ctx domain.Context, rec domain.EvaluationRecord) (string, error) {
	tracer := otel.Tracer("repo.evaluations")
	ctx, span := tracer.Start(ctx, "evaluations.Append")
	defer span.End()

	id := rec.ID
	if id == "" {
		id = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	}
	violations, err := json.Marshal(rec.Violations)
	if err != nil {
		return "", fmt.Errorf("op=evaluations.append: %w", err)
	}
	q := `INSERT INTO evaluation_records (id, task_id, day_number, stage, content_snapshot, target_words, actual_words, violations, verdict, quality_score, reasoning, fallback_used, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err = r.Pool.Exec(ctx, q, id, rec.TaskID, rec.DayNumber, rec.Stage, rec.ContentSnapshot, rec.TargetWords, rec.ActualWords, violations, rec.Verdict, rec.QualityScore, rec.Reasoning, rec.FallbackUsed, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=evaluations.append: %w", err)
	}
	return id, nil
}

// ListByDay returns all audit records for one (task, day) in insertion order.
func (r *EvaluationRepo) ListByDay(ctx domain.Context, taskID string, dayNumber int) ([]domain.EvaluationRecord, error) {
	tracer := otel.Tracer("repo.evaluations")
	ctx, span := tracer.Start(ctx, "evaluations.ListByDay")
	defer span.End()
	q := `SELECT id, task_id, day_number, stage, content_snapshot, target_words, actual_words, violations, verdict, quality_score, reasoning, fallback_used, created_at FROM evaluation_records WHERE task_id=$1 AND day_number=$2 ORDER BY id`
	rows, err := r.Pool.Query(ctx, q, taskID, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("op=evaluations.list: %w", err)
	}
	defer rows.Close()

	var out []domain.EvaluationRecord
	for rows.Next() {
		var rec domain.EvaluationRecord
		var violations []byte
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.DayNumber, &rec.Stage, &rec.ContentSnapshot, &rec.TargetWords, &rec.ActualWords, &violations, &rec.Verdict, &rec.QualityScore, &rec.Reasoning, &rec.FallbackUsed, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=evaluations.list: %w", err)
		}
		if err := json.Unmarshal(violations, &rec.Violations); err != nil {
			return nil, fmt.Errorf("op=evaluations.list: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=evaluations.list: %w", err)
	}
	return out, nil
}
