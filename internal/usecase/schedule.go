// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"time"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// MilestoneService creates tasks, generates their daily schedule, and
// applies the deficit carry-forward arithmetic after each evaluation.
type MilestoneService struct {
	Tasks      domain.TaskRepository
	Milestones domain.MilestoneRepository
}

// NewMilestoneService constructs a MilestoneService with its dependencies.
func NewMilestoneService(t domain.TaskRepository, m domain.MilestoneRepository) MilestoneService {
	return MilestoneService{Tasks: t, Milestones: m}
}

// CreateTask validates inputs and persists a draft task.
func (s MilestoneService) CreateTask(ctx domain.Context, userID, title string, totalWords, durationDays int, deposit int64) (string, error) {
	if userID == "" || title == "" {
		return "", fmt.Errorf("%w: user and title required", domain.ErrInvalidArgument)
	}
	if totalWords <= 0 || durationDays <= 0 {
		return "", fmt.Errorf("%w: total words and duration must be positive", domain.ErrInvalidArgument)
	}
	if deposit <= 0 {
		return "", fmt.Errorf("%w: deposit must be positive", domain.ErrInvalidArgument)
	}
	now := time.Now().UTC()
	t := domain.Task{
		UserID:        userID,
		Title:         title,
		TotalWords:    totalWords,
		DurationDays:  durationDays,
		DepositAmount: deposit,
		Status:        domain.TaskDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.Tasks.Create(ctx, t)
}

// ActivateTask flips a draft task to active and batch-creates one milestone
// per day with the base quota and no carried deficit. Day 1 starts today.
func (s MilestoneService) ActivateTask(ctx domain.Context, taskID string) ([]domain.DailyMilestone, error) {
	t, err := s.Tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.TaskDraft {
		return nil, fmt.Errorf("%w: task is %s", domain.ErrConflict, t.Status)
	}

	base := t.BaseQuota()
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	ms := make([]domain.DailyMilestone, 0, t.DurationDays)
	for day := 1; day <= t.DurationDays; day++ {
		ms = append(ms, domain.DailyMilestone{
			TaskID:           taskID,
			DayNumber:        day,
			TargetDate:       start.AddDate(0, 0, day-1),
			RequiredWords:    base,
			Status:           domain.MilestonePending,
			EvaluationStatus: domain.EvaluationPending,
			RefundStatus:     domain.RefundPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	if err := s.Milestones.CreateBatch(ctx, ms); err != nil {
		return nil, err
	}
	if err := s.Tasks.UpdateStatus(ctx, taskID, domain.TaskActive); err != nil {
		return nil, err
	}
	return ms, nil
}

// Schedule returns the task's milestones ordered by day.
func (s MilestoneService) Schedule(ctx domain.Context, taskID string) ([]domain.DailyMilestone, error) {
	return s.Milestones.ListByTask(ctx, taskID)
}

// ApplyEvaluation records the day's outcome on milestone m and rolls any
// shortfall into the next day. Missed words are never forgiven, only
// deferred: the next day's target is the base quota plus today's deficit,
// so full completion of the schedule implies the task total was written.
func (s MilestoneService) ApplyEvaluation(ctx domain.Context, t domain.Task, m domain.DailyMilestone, wordsWritten int, verdict domain.EvaluationStatus, score *int, feedback string, flagged bool) (domain.DailyMilestone, error) {
	base := t.BaseQuota()

	m.WordsWritten = wordsWritten
	m.EvaluationStatus = verdict
	m.ContentQualityScore = score
	m.AIFeedback = feedback
	m.FlaggedForReview = flagged

	target := m.EffectiveTarget()
	deficit := target - wordsWritten
	if deficit < 0 {
		deficit = 0
	}
	m.WordsDeficit = deficit
	m.NextDayTarget = base + deficit

	if wordsWritten >= target {
		m.Status = domain.MilestoneCompleted
	} else {
		m.Status = domain.MilestonePending
	}
	if verdict == domain.EvaluationTargetMet {
		m.RefundStatus = domain.RefundEligible
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.Milestones.Update(ctx, m); err != nil {
		return domain.DailyMilestone{}, err
	}

	// carry the deficit into the next day, if one exists
	if m.DayNumber < t.DurationDays {
		next, err := s.Milestones.Get(ctx, t.ID, m.DayNumber+1)
		if err != nil {
			return domain.DailyMilestone{}, fmt.Errorf("op=schedule.carry: %w", err)
		}
		next.WordsCarriedForward = deficit
		next.UpdatedAt = time.Now().UTC()
		if err := s.Milestones.Update(ctx, next); err != nil {
			return domain.DailyMilestone{}, fmt.Errorf("op=schedule.carry: %w", err)
		}
	}
	return m, nil
}
