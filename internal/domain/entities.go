// Package domain holds the core entities, ports, and error taxonomy.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrSubmitInFlight  = errors.New("submission already in flight")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrInternal        = errors.New("internal error")
)

// TaskStatus enumerates the task lifecycle.
type TaskStatus string

const (
	TaskDraft     TaskStatus = "draft"
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
	TaskCancelled TaskStatus = "cancelled"
)

// Task is a deposit-backed writing goal.
// Immutable once created except Status.
type Task struct {
	ID            string
	UserID        string
	Title         string
	TotalWords    int
	DurationDays  int
	DepositAmount int64
	Status        TaskStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BaseQuota is the per-day word quota before any carried deficit:
// ceil(TotalWords / DurationDays).
func (t Task) BaseQuota() int {
	if t.DurationDays <= 0 {
		return 0
	}
	return (t.TotalWords + t.DurationDays - 1) / t.DurationDays
}

// MilestoneStatus enumerates the per-day completion state.
type MilestoneStatus string

const (
	MilestonePending   MilestoneStatus = "pending"
	MilestoneCompleted MilestoneStatus = "completed"
)

// EvaluationStatus enumerates the per-day evaluation outcome.
type EvaluationStatus string

const (
	EvaluationPending      EvaluationStatus = "pending"
	EvaluationTargetMet    EvaluationStatus = "target_met"
	EvaluationTargetNotMet EvaluationStatus = "target_not_met"
)

// RefundStatus enumerates the milestone-level refund progression.
type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundEligible  RefundStatus = "eligible"
	RefundApproved  RefundStatus = "approved"
	RefundCompleted RefundStatus = "completed"
)

// DailyMilestone tracks one day of a task.
// Invariant: RequiredWords for day N equals the task base quota; the
// prior day's deficit lands in WordsCarriedForward, so the effective
// target is RequiredWords + WordsCarriedForward.
type DailyMilestone struct {
	ID                  string
	TaskID              string
	DayNumber           int
	TargetDate          time.Time
	RequiredWords       int
	WordsCarriedForward int
	WordsWritten        int
	Status              MilestoneStatus
	EvaluationStatus    EvaluationStatus
	ContentQualityScore *int
	AIFeedback          string
	WordsDeficit        int
	NextDayTarget       int
	FlaggedForReview    bool
	RefundAmount        int64
	RefundStatus        RefundStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectiveTarget is the word count the day must reach.
func (m DailyMilestone) EffectiveTarget() int {
	return m.RequiredWords + m.WordsCarriedForward
}

// DailyContent is the text blob for one (task, day); overwritten on save.
type DailyContent struct {
	TaskID    string
	DayNumber int
	Content   string
	WordCount int
	UpdatedAt time.Time
}

// EvaluationStage identifies which pipeline stage produced a record.
type EvaluationStage string

const (
	StageWordCheck       EvaluationStage = "word_check"
	StageRepetitionCheck EvaluationStage = "repetition_check"
	StageQualityCheck    EvaluationStage = "quality_check"
)

// EvaluationRecord is the append-only audit row for one validation attempt.
// It must carry enough raw data to reconstruct the decision without
// re-running the pipeline.
type EvaluationRecord struct {
	ID              string
	TaskID          string
	DayNumber       int
	Stage           EvaluationStage
	ContentSnapshot string
	TargetWords     int
	ActualWords     int
	Violations      []Violation
	Verdict         EvaluationStatus
	QualityScore    *int
	Reasoning       string
	FallbackUsed    bool
	CreatedAt       time.Time
}

// RefundRequestStatus enumerates the claim state machine.
type RefundRequestStatus string

const (
	RefundAwaitingReview   RefundRequestStatus = "awaiting_review"
	RefundRequestApproved  RefundRequestStatus = "approved"
	RefundRequestCompleted RefundRequestStatus = "completed"
	RefundRequestRejected  RefundRequestStatus = "rejected"
)

// RefundRequest is a claim against the deposit for one milestone.
// At most one non-terminal request may exist per milestone.
type RefundRequest struct {
	ID          string
	MilestoneID string
	TaskID      string
	UserID      string
	Amount      int64
	Status      RefundRequestStatus
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RefundLedger is the cumulative balance of completed refunds for a user.
type RefundLedger struct {
	UserID    string
	Balance   int64
	UpdatedAt time.Time
}

// Context is an alias so adapters and usecases pass context.Context through
// without the domain package naming it in every signature.
type Context = context.Context
