package domain

// Repositories (ports)

type TaskRepository interface {
	Create(ctx Context, t Task) (string, error)
	Get(ctx Context, id string) (Task, error)
	UpdateStatus(ctx Context, id string, status TaskStatus) error
}

type MilestoneRepository interface {
	CreateBatch(ctx Context, ms []DailyMilestone) error
	Get(ctx Context, taskID string, dayNumber int) (DailyMilestone, error)
	GetByID(ctx Context, id string) (DailyMilestone, error)
	ListByTask(ctx Context, taskID string) ([]DailyMilestone, error)
	Update(ctx Context, m DailyMilestone) error
}

type ContentRepository interface {
	Upsert(ctx Context, c DailyContent) error
	Get(ctx Context, taskID string, dayNumber int) (DailyContent, error)
	// ListBefore returns all content for the task saved for days strictly
	// earlier than dayNumber, ordered by day. This is the prior corpus the
	// repetition detector compares against.
	ListBefore(ctx Context, taskID string, dayNumber int) ([]DailyContent, error)
}

type EvaluationRepository interface {
	Append(ctx Context, rec EvaluationRecord) (string, error)
	ListByDay(ctx Context, taskID string, dayNumber int) ([]EvaluationRecord, error)
}

type RefundRepository interface {
	// Create inserts a claim; a second non-terminal claim for the same
	// milestone surfaces as ErrConflict.
	Create(ctx Context, r RefundRequest) (string, error)
	Get(ctx Context, id string) (RefundRequest, error)
	UpdateStatus(ctx Context, id string, status RefundRequestStatus, adminNotes string) error
	// Complete flips an approved request to completed and credits the user
	// ledger in one transaction; it is idempotent per request.
	Complete(ctx Context, id string) error
	LedgerBalance(ctx Context, userID string) (int64, error)
}

// DictionaryClient (port)
//
// Lookup reports whether word exists in the backing dictionary. A (false,
// nil) return is a definitive not-found; a non-nil error is a transport or
// service failure the caller degrades on. The asymmetry is intentional:
// explicit negatives are authoritative, errors get heuristic leniency.
type DictionaryClient interface {
	Lookup(ctx Context, word string) (bool, error)
	Source() string
}

// OracleClient (port)
//
// ChatJSON asks the quality oracle for a JSON object matching the prompt's
// schema instruction and returns the raw message content. Callers must
// treat the output as untrusted.
type OracleClient interface {
	ChatJSON(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// ReviewEvent is published when a submission was flagged for mandatory
// admin review; the external admin surface consumes these.
type ReviewEvent struct {
	TaskID       string      `json:"task_id"`
	DayNumber    int         `json:"day_number"`
	RecordID     string      `json:"record_id"`
	QualityScore int         `json:"quality_score"`
	FallbackUsed bool        `json:"fallback_used"`
	Violations   []Violation `json:"violations"`
}

// ReviewPublisher (port)
type ReviewPublisher interface {
	PublishFlagged(ctx Context, ev ReviewEvent) error
}
