package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/zawlinnphyo/wordstake/internal/adapter/observability"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// RefundService manages deposit refund claims. A claim starts at
// awaiting_review and moves through approved to completed, or to the
// terminal rejected state; the ledger is credited only on completion.
type RefundService struct {
	Tasks      domain.TaskRepository
	Milestones domain.MilestoneRepository
	Refunds    domain.RefundRepository
}

func NewRefundService(t domain.TaskRepository, m domain.MilestoneRepository, r domain.RefundRepository) RefundService {
	return RefundService{Tasks: t, Milestones: m, Refunds: r}
}

// Create opens a claim for the milestone. The milestone must have earned
// eligibility through a target_met evaluation; a second live claim for the
// same milestone is rejected with ErrConflict. A zero amount requests the
// default per-day share of the deposit.
func (s RefundService) Create(ctx domain.Context, taskID string, day int, amount int64) (domain.RefundRequest, error) {
	t, err := s.Tasks.Get(ctx, taskID)
	if err != nil {
		return domain.RefundRequest{}, err
	}
	m, err := s.Milestones.Get(ctx, taskID, day)
	if err != nil {
		return domain.RefundRequest{}, err
	}
	if m.EvaluationStatus != domain.EvaluationTargetMet || m.RefundStatus != domain.RefundEligible {
		return domain.RefundRequest{}, fmt.Errorf("%w: milestone day %d is not refund eligible", domain.ErrConflict, day)
	}

	share := dailyShare(t)
	if amount == 0 {
		amount = share
	}
	if amount < 0 || amount > share {
		return domain.RefundRequest{}, fmt.Errorf("%w: refund amount %d exceeds daily share %d", domain.ErrInvalidArgument, amount, share)
	}

	now := time.Now().UTC()
	req := domain.RefundRequest{
		MilestoneID: m.ID,
		TaskID:      taskID,
		UserID:      t.UserID,
		Amount:      amount,
		Status:      domain.RefundAwaitingReview,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.Refunds.Create(ctx, req)
	if err != nil {
		return domain.RefundRequest{}, err
	}
	req.ID = id

	observability.RecordRefundTransition(string(domain.RefundAwaitingReview))
	slog.Info("refund claim opened",
		slog.String("request_id", id),
		slog.String("task_id", taskID),
		slog.Int("day", day),
		slog.Int64("amount", amount))
	return req, nil
}

// Approve moves an awaiting_review claim to approved and records the
// reviewer's notes on the request and the amount on the milestone.
func (s RefundService) Approve(ctx domain.Context, requestID, notes string) error {
	req, err := s.transition(ctx, requestID, domain.RefundAwaitingReview, domain.RefundRequestApproved, notes)
	if err != nil {
		return err
	}
	m, err := s.Milestones.GetByID(ctx, req.MilestoneID)
	if err != nil {
		return err
	}
	m.RefundStatus = domain.RefundApproved
	m.RefundAmount = req.Amount
	return s.Milestones.Update(ctx, m)
}

// Reject moves an awaiting_review claim to the terminal rejected state.
// The milestone stays eligible so the user may claim again.
func (s RefundService) Reject(ctx domain.Context, requestID, notes string) error {
	if notes == "" {
		return fmt.Errorf("%w: rejection requires admin notes", domain.ErrInvalidArgument)
	}
	_, err := s.transition(ctx, requestID, domain.RefundAwaitingReview, domain.RefundRequestRejected, notes)
	return err
}

// Complete settles an approved claim: the request flips to completed and
// the user ledger is credited in one transaction, then the milestone is
// marked refunded. Replays after the transaction are no-ops.
func (s RefundService) Complete(ctx domain.Context, requestID string) error {
	req, err := s.Refunds.Get(ctx, requestID)
	if err != nil {
		return err
	}
	switch req.Status {
	case domain.RefundRequestApproved:
	case domain.RefundRequestCompleted:
		return nil
	default:
		return fmt.Errorf("%w: cannot complete refund in state %s", domain.ErrConflict, req.Status)
	}

	if err := s.Refunds.Complete(ctx, requestID); err != nil {
		return err
	}
	observability.RecordRefundTransition(string(domain.RefundRequestCompleted))

	m, err := s.Milestones.GetByID(ctx, req.MilestoneID)
	if err != nil {
		return err
	}
	m.RefundStatus = domain.RefundCompleted
	if err := s.Milestones.Update(ctx, m); err != nil {
		return err
	}
	slog.Info("refund settled",
		slog.String("request_id", requestID),
		slog.String("user_id", req.UserID),
		slog.Int64("amount", req.Amount))
	return nil
}

// Get returns a single claim.
func (s RefundService) Get(ctx domain.Context, requestID string) (domain.RefundRequest, error) {
	return s.Refunds.Get(ctx, requestID)
}

// Balance returns the user's cumulative completed refunds.
func (s RefundService) Balance(ctx domain.Context, userID string) (int64, error) {
	return s.Refunds.LedgerBalance(ctx, userID)
}

func (s RefundService) transition(ctx domain.Context, requestID string, from, to domain.RefundRequestStatus, notes string) (domain.RefundRequest, error) {
	req, err := s.Refunds.Get(ctx, requestID)
	if err != nil {
		return domain.RefundRequest{}, err
	}
	if req.Status != from {
		return domain.RefundRequest{}, fmt.Errorf("%w: refund is %s, expected %s", domain.ErrConflict, req.Status, from)
	}
	if err := s.Refunds.UpdateStatus(ctx, requestID, to, notes); err != nil {
		return domain.RefundRequest{}, err
	}
	req.Status = to
	req.AdminNotes = notes
	observability.RecordRefundTransition(string(to))
	return req, nil
}

// dailyShare is the deposit portion one milestone can reclaim:
// floor(DepositAmount / DurationDays).
func dailyShare(t domain.Task) int64 {
	if t.DurationDays <= 0 {
		return 0
	}
	return t.DepositAmount / int64(t.DurationDays)
}
