package httpserver

import (
	"time"

	"github.com/zawlinnphyo/wordstake/internal/domain"
	"github.com/zawlinnphyo/wordstake/internal/usecase"
)

type milestoneDTO struct {
	ID                  string              `json:"id"`
	DayNumber           int                 `json:"day_number"`
	TargetDate          string              `json:"target_date"`
	RequiredWords       int                 `json:"required_words"`
	WordsCarriedForward int                 `json:"words_carried_forward"`
	EffectiveTarget     int                 `json:"effective_target"`
	WordsWritten        int                 `json:"words_written"`
	WordsDeficit        int                 `json:"words_deficit"`
	NextDayTarget       int                 `json:"next_day_target"`
	Status              string              `json:"status"`
	EvaluationStatus    string              `json:"evaluation_status"`
	QualityScore        *int                `json:"quality_score,omitempty"`
	Feedback            string              `json:"feedback,omitempty"`
	FlaggedForReview    bool                `json:"flagged_for_review"`
	RefundStatus        domain.RefundStatus `json:"refund_status"`
	RefundAmount        int64               `json:"refund_amount"`
}

func toMilestoneDTOs(ms []domain.DailyMilestone) []milestoneDTO {
	out := make([]milestoneDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, milestoneDTO{
			ID:                  m.ID,
			DayNumber:           m.DayNumber,
			TargetDate:          m.TargetDate.Format(time.DateOnly),
			RequiredWords:       m.RequiredWords,
			WordsCarriedForward: m.WordsCarriedForward,
			EffectiveTarget:     m.EffectiveTarget(),
			WordsWritten:        m.WordsWritten,
			WordsDeficit:        m.WordsDeficit,
			NextDayTarget:       m.NextDayTarget,
			Status:              string(m.Status),
			EvaluationStatus:    string(m.EvaluationStatus),
			QualityScore:        m.ContentQualityScore,
			Feedback:            m.AIFeedback,
			FlaggedForReview:    m.FlaggedForReview,
			RefundStatus:        m.RefundStatus,
			RefundAmount:        m.RefundAmount,
		})
	}
	return out
}

type submissionDTO struct {
	Passed         bool               `json:"passed"`
	Stage          string             `json:"stage"`
	Verdict        string             `json:"verdict"`
	Violations     []domain.Violation `json:"violations"`
	QualityScore   *int               `json:"quality_score,omitempty"`
	Reasoning      string             `json:"reasoning,omitempty"`
	FallbackUsed   bool               `json:"fallback_used"`
	Flagged        bool               `json:"flagged_for_review"`
	WordsDeficit   int                `json:"words_deficit"`
	NextDayTarget  int                `json:"next_day_target"`
	RefundEligible bool               `json:"refund_eligible"`
}

func toSubmissionDTO(res usecase.SubmissionResult) submissionDTO {
	violations := res.Violations
	if violations == nil {
		violations = []domain.Violation{}
	}
	return submissionDTO{
		Passed:         res.Passed,
		Stage:          string(res.Stage),
		Verdict:        string(res.Verdict),
		Violations:     violations,
		QualityScore:   res.QualityScore,
		Reasoning:      res.Reasoning,
		FallbackUsed:   res.FallbackUsed,
		Flagged:        res.Flagged,
		WordsDeficit:   res.Milestone.WordsDeficit,
		NextDayTarget:  res.Milestone.NextDayTarget,
		RefundEligible: res.RefundEligible,
	}
}

type refundDTO struct {
	ID          string `json:"id"`
	MilestoneID string `json:"milestone_id"`
	TaskID      string `json:"task_id"`
	UserID      string `json:"user_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	AdminNotes  string `json:"admin_notes,omitempty"`
}

func toRefundDTO(r domain.RefundRequest) refundDTO {
	return refundDTO{
		ID:          r.ID,
		MilestoneID: r.MilestoneID,
		TaskID:      r.TaskID,
		UserID:      r.UserID,
		Amount:      r.Amount,
		Status:      string(r.Status),
		AdminNotes:  r.AdminNotes,
	}
}

type evaluationDTO struct {
	ID           string             `json:"id"`
	Stage        string             `json:"stage"`
	TargetWords  int                `json:"target_words"`
	ActualWords  int                `json:"actual_words"`
	Violations   []domain.Violation `json:"violations"`
	Verdict      string             `json:"verdict"`
	QualityScore *int               `json:"quality_score,omitempty"`
	Reasoning    string             `json:"reasoning,omitempty"`
	FallbackUsed bool               `json:"fallback_used"`
	CreatedAt    time.Time          `json:"created_at"`
}

func toEvaluationDTOs(recs []domain.EvaluationRecord) []evaluationDTO {
	out := make([]evaluationDTO, 0, len(recs))
	for _, rec := range recs {
		violations := rec.Violations
		if violations == nil {
			violations = []domain.Violation{}
		}
		out = append(out, evaluationDTO{
			ID:           rec.ID,
			Stage:        string(rec.Stage),
			TargetWords:  rec.TargetWords,
			ActualWords:  rec.ActualWords,
			Violations:   violations,
			Verdict:      string(rec.Verdict),
			QualityScore: rec.QualityScore,
			Reasoning:    rec.Reasoning,
			FallbackUsed: rec.FallbackUsed,
			CreatedAt:    rec.CreatedAt,
		})
	}
	return out
}
