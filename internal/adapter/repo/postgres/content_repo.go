package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// ContentRepo persists daily content blobs keyed by (task, day).
type ContentRepo struct{ Pool PgxPool }

// NewContentRepo constructs a ContentRepo with the given pool.
func NewContentRepo(p PgxPool) *ContentRepo { return &ContentRepo{Pool: p} }

// Upsert overwrites the day's content; the editor autosaves, so the latest
// write always wins.
func (r *ContentRepo) Upsert(ctx domain.Context, c domain.DailyContent) error {
	tracer := otel.Tracer("repo.contents")
	ctx, span := tracer.Start(ctx, "contents.Upsert")
	defer span.End()
	q := `INSERT INTO daily_contents (task_id, day_number, content, word_count, updated_at) VALUES ($1,$2,$3,$4,$5)
	ON CONFLICT (task_id, day_number) DO UPDATE SET content=EXCLUDED.content, word_count=EXCLUDED.word_count, updated_at=EXCLUDED.updated_at`
	_, err := r.Pool.Exec(ctx, q, c.TaskID, c.DayNumber, c.Content, c.WordCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=contents.upsert: %w", err)
	}
	return nil
}

// Get loads the content for one (task, day).
func (r *ContentRepo) Get(ctx domain.Context, taskID string, dayNumber int) (domain.DailyContent, error) {
	tracer := otel.Tracer("repo.contents")
	ctx, span := tracer.Start(ctx, "contents.Get")
	defer span.End()
	q := `SELECT task_id, day_number, content, word_count, updated_at FROM daily_contents WHERE task_id=$1 AND day_number=$2`
	row := r.Pool.QueryRow(ctx, q, taskID, dayNumber)
	var c domain.DailyContent
	if err := row.Scan(&c.TaskID, &c.DayNumber, &c.Content, &c.WordCount, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.DailyContent{}, fmt.Errorf("op=contents.get: %w", domain.ErrNotFound)
		}
		return domain.DailyContent{}, fmt.Errorf("op=contents.get: %w", err)
	}
	return c, nil
}

// ListBefore returns the task's content for days strictly earlier than
// dayNumber, ordered by day.
func (r *ContentRepo) ListBefore(ctx domain.Context, taskID string, dayNumber int) ([]domain.DailyContent, error) {
	tracer := otel.Tracer("repo.contents")
	ctx, span := tracer.Start(ctx, "contents.ListBefore")
	defer span.End()
	q := `SELECT task_id, day_number, content, word_count, updated_at FROM daily_contents WHERE task_id=$1 AND day_number < $2 ORDER BY day_number`
	rows, err := r.Pool.Query(ctx, q, taskID, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("op=contents.list_before: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyContent
	for rows.Next() {
		var c domain.DailyContent
		if err := rows.Scan(&c.TaskID, &c.DayNumber, &c.Content, &c.WordCount, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("op=contents.list_before: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=contents.list_before: %w", err)
	}
	return out, nil
}
