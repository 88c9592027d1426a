package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zawlinnphyo/wordstake/internal/adapter/observability"
	"github.com/zawlinnphyo/wordstake/internal/adapter/oracle"
	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
	"github.com/zawlinnphyo/wordstake/internal/repetition"
	"github.com/zawlinnphyo/wordstake/internal/wordcheck"
	"github.com/zawlinnphyo/wordstake/pkg/textx"
)

// SubmitGuard serializes full-document validations per editor session.
// Acquire returns a release func, or ErrSubmitInFlight while another
// submission holds the session.
type SubmitGuard interface {
	Acquire(ctx domain.Context, sessionID string) (func(), error)
}

// ValidationService runs the full submission pipeline: word validation,
// repetition detection, then the quality oracle, short-circuiting at the
// first failing stage. Every stage outcome is recorded in the append-only
// evaluation audit log.
type ValidationService struct {
	Words      *wordcheck.Validator
	Detector   *repetition.Detector
	Oracle     domain.OracleClient
	Tasks      domain.TaskRepository
	Milestones domain.MilestoneRepository
	Contents   domain.ContentRepository
	Evals      domain.EvaluationRepository
	Publisher  domain.ReviewPublisher
	Guard      SubmitGuard
	Schedule   MilestoneService
	Policy     config.Policy

	PromptBudget    int
	OracleMaxTokens int
}

// SubmissionResult is the verdict returned to the editor on submit.
type SubmissionResult struct {
	Passed         bool
	Stage          domain.EvaluationStage
	Violations     []domain.Violation
	Verdict        domain.EvaluationStatus
	QualityScore   *int
	Reasoning      string
	FallbackUsed   bool
	Flagged        bool
	Milestone      domain.DailyMilestone
	RefundEligible bool
}

// CheckWords is the per-keystroke validation path: fast, tracked nowhere.
func (s ValidationService) CheckWords(ctx domain.Context, words []string) []wordcheck.Result {
	return s.Words.ValidateWords(ctx, words)
}

// SaveContent overwrites the day's content blob and returns its word count.
func (s ValidationService) SaveContent(ctx domain.Context, taskID string, day int, content string) (int, error) {
	t, err := s.Tasks.Get(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if t.Status != domain.TaskActive {
		return 0, fmt.Errorf("%w: task is %s", domain.ErrConflict, t.Status)
	}
	if day < 1 || day > t.DurationDays {
		return 0, fmt.Errorf("%w: day %d outside schedule", domain.ErrInvalidArgument, day)
	}
	clean := textx.SanitizeText(content)
	count := textx.CountWords(clean)
	c := domain.DailyContent{
		TaskID:    taskID,
		DayNumber: day,
		Content:   clean,
		WordCount: count,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Contents.Upsert(ctx, c); err != nil {
		return 0, err
	}
	return count, nil
}

// Submit runs the full pipeline for the day's saved content. At most one
// submission per session may be in flight; a second attempt is rejected
// with ErrSubmitInFlight. Policy violations come back in the result, not
// as errors; only system failures (persistence, missing rows) are errors.
func (s ValidationService) Submit(ctx domain.Context, taskID string, day int, sessionID string) (SubmissionResult, error) {
	release, err := s.Guard.Acquire(ctx, sessionID)
	if err != nil {
		return SubmissionResult{}, err
	}
	defer release()

	task, err := s.Tasks.Get(ctx, taskID)
	if err != nil {
		return SubmissionResult{}, err
	}
	milestone, err := s.Milestones.Get(ctx, taskID, day)
	if err != nil {
		return SubmissionResult{}, err
	}
	content, err := s.Contents.Get(ctx, taskID, day)
	if err != nil {
		return SubmissionResult{}, err
	}

	plain := textx.StripMarkup(content.Content)
	actual := textx.CountWords(content.Content)
	target := milestone.EffectiveTarget()

	// Stage 1: lexical validation of the full document.
	if vs := s.Words.InvalidWords(ctx, plain); len(vs) > 0 {
		if _, err := s.appendRecord(ctx, task, day, content.Content, domain.StageWordCheck, vs, target, actual, domain.EvaluationTargetNotMet, nil, "invalid words found", false); err != nil {
			return SubmissionResult{}, err
		}
		observability.RecordValidation(string(domain.StageWordCheck), "rejected")
		return SubmissionResult{Stage: domain.StageWordCheck, Violations: vs, Verdict: domain.EvaluationTargetNotMet}, nil
	}

	// Stage 2: repetition against the task's prior content.
	prior, err := s.Contents.ListBefore(ctx, taskID, day)
	if err != nil {
		return SubmissionResult{}, err
	}
	var sb strings.Builder
	for _, p := range prior {
		sb.WriteString(p.Content)
		sb.WriteString("\n\n")
	}
	if vs := s.Detector.Check(content.Content, sb.String(), repetition.CheckAll); len(vs) > 0 {
		if _, err := s.appendRecord(ctx, task, day, content.Content, domain.StageRepetitionCheck, vs, target, actual, domain.EvaluationTargetNotMet, nil, "repetitive content found", false); err != nil {
			return SubmissionResult{}, err
		}
		observability.RecordValidation(string(domain.StageRepetitionCheck), "rejected")
		return SubmissionResult{Stage: domain.StageRepetitionCheck, Violations: vs, Verdict: domain.EvaluationTargetNotMet}, nil
	}

	// Stage 3: quality oracle with strict parse-or-fallback.
	ev := s.evaluateQuality(ctx, task.Title, plain, target, actual)
	flagged := ev.ShouldFlag(s.Policy.FlagScoreBelow, s.Policy.FlagViolationsAbove)

	var violations []domain.Violation
	if ev.FallbackUsed {
		violations = append(violations, domain.OracleParseFailure(ev.Reasoning))
	} else {
		for _, rv := range ev.RuleViolations {
			violations = append(violations, domain.OracleRule(rv))
		}
	}

	score := ev.QualityScore
	recID, err := s.appendRecord(ctx, task, day, content.Content, domain.StageQualityCheck, violations, target, actual, ev.Verdict, &score, ev.Reasoning, ev.FallbackUsed)
	if err != nil {
		return SubmissionResult{}, err
	}

	updated, err := s.Schedule.ApplyEvaluation(ctx, task, milestone, actual, ev.Verdict, &score, ev.Reasoning, flagged)
	if err != nil {
		return SubmissionResult{}, err
	}

	if flagged {
		s.publishFlagged(ctx, domain.ReviewEvent{
			TaskID:       taskID,
			DayNumber:    day,
			RecordID:     recID,
			QualityScore: ev.QualityScore,
			FallbackUsed: ev.FallbackUsed,
			Violations:   violations,
		})
	}

	passed := ev.Verdict == domain.EvaluationTargetMet
	outcome := "rejected"
	if passed {
		outcome = "passed"
	}
	observability.RecordValidation(string(domain.StageQualityCheck), outcome)
	observability.QualityScoreHistogram.Observe(float64(ev.QualityScore))

	return SubmissionResult{
		Passed:         passed,
		Stage:          domain.StageQualityCheck,
		Violations:     violations,
		Verdict:        ev.Verdict,
		QualityScore:   &score,
		Reasoning:      ev.Reasoning,
		FallbackUsed:   ev.FallbackUsed,
		Flagged:        flagged,
		Milestone:      updated,
		RefundEligible: updated.RefundStatus == domain.RefundEligible,
	}, nil
}

// evaluateQuality invokes the oracle once and never fails: any transport
// or schema problem yields the deterministic word-count fallback.
func (s ValidationService) evaluateQuality(ctx domain.Context, title, plain string, target, actual int) oracle.Evaluation {
	userPrompt := oracle.BuildUserPrompt(plain, title, target, actual, s.PromptBudget)
	raw, err := s.Oracle.ChatJSON(ctx, oracle.SystemPrompt, userPrompt, s.OracleMaxTokens)
	if err != nil {
		slog.Warn("oracle call failed, using fallback verdict", slog.Any("error", err))
		observability.OracleFallbackTotal.Inc()
		return oracle.FallbackEvaluation(target, actual, err.Error())
	}
	ev, err := oracle.ParseEvaluation(raw)
	if err != nil {
		slog.Warn("oracle response unparseable, using fallback verdict", slog.Any("error", err))
		observability.OracleFallbackTotal.Inc()
		return oracle.FallbackEvaluation(target, actual, err.Error())
	}
	return ev
}

func (s ValidationService) appendRecord(ctx domain.Context, task domain.Task, day int, snapshot string, stage domain.EvaluationStage, vs []domain.Violation, target, actual int, verdict domain.EvaluationStatus, score *int, reasoning string, fallback bool) (string, error) {
	rec := domain.EvaluationRecord{
		TaskID:          task.ID,
		DayNumber:       day,
		Stage:           stage,
		ContentSnapshot: snapshot,
		TargetWords:     target,
		ActualWords:     actual,
		Violations:      vs,
		Verdict:         verdict,
		QualityScore:    score,
		Reasoning:       reasoning,
		FallbackUsed:    fallback,
		CreatedAt:       time.Now().UTC(),
	}
	id, err := s.Evals.Append(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("op=validate.audit: %w", err)
	}
	return id, nil
}

// publishFlagged is fire-and-forget: the audit row is the durable record,
// the event only wakes the admin surface.
func (s ValidationService) publishFlagged(ctx domain.Context, ev domain.ReviewEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishFlagged(ctx, ev); err != nil {
		slog.Error("failed to publish review event",
			slog.String("task_id", ev.TaskID),
			slog.Int("day", ev.DayNumber),
			slog.Any("error", err))
	}
}
