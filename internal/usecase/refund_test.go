package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zawlinnphyo/wordstake/internal/domain"
	"github.com/zawlinnphyo/wordstake/internal/domain/mocks"
	"github.com/zawlinnphyo/wordstake/internal/usecase"
)

func refundFixture() (*mocks.MockTaskRepository, *mocks.MockMilestoneRepository, *mocks.MockRefundRepository, usecase.RefundService) {
	tasks := &mocks.MockTaskRepository{}
	milestones := &mocks.MockMilestoneRepository{}
	refunds := &mocks.MockRefundRepository{}
	return tasks, milestones, refunds, usecase.NewRefundService(tasks, milestones, refunds)
}

func eligibleMilestone() domain.DailyMilestone {
	return domain.DailyMilestone{
		ID:               "m-1",
		TaskID:           "task-1",
		DayNumber:        1,
		EvaluationStatus: domain.EvaluationTargetMet,
		RefundStatus:     domain.RefundEligible,
	}
}

func TestRefundCreate_DefaultsToDailyShare(t *testing.T) {
	t.Parallel()
	tasks, milestones, refunds, svc := refundFixture()
	tasks.On("Get", mock.Anything, "task-1").Return(domain.Task{ID: "task-1", UserID: "u-1", DurationDays: 3, DepositAmount: 3000}, nil)
	milestones.On("Get", mock.Anything, "task-1", 1).Return(eligibleMilestone(), nil)
	refunds.On("Create", mock.Anything, mock.MatchedBy(func(r domain.RefundRequest) bool {
		return r.Amount == 1000 && r.Status == domain.RefundAwaitingReview && r.MilestoneID == "m-1" && r.UserID == "u-1"
	})).Return("rf-1", nil)

	req, err := svc.Create(context.Background(), "task-1", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "rf-1", req.ID)
	assert.Equal(t, int64(1000), req.Amount)
	refunds.AssertExpectations(t)
}

func TestRefundCreate_RejectsIneligibleMilestone(t *testing.T) {
	t.Parallel()
	tasks, milestones, _, svc := refundFixture()
	tasks.On("Get", mock.Anything, "task-1").Return(domain.Task{ID: "task-1", DurationDays: 3, DepositAmount: 3000}, nil)

	m := eligibleMilestone()
	m.EvaluationStatus = domain.EvaluationTargetNotMet
	m.RefundStatus = domain.RefundPending
	milestones.On("Get", mock.Anything, "task-1", 1).Return(m, nil)

	_, err := svc.Create(context.Background(), "task-1", 1, 0)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRefundCreate_RejectsOverclaim(t *testing.T) {
	t.Parallel()
	tasks, milestones, _, svc := refundFixture()
	tasks.On("Get", mock.Anything, "task-1").Return(domain.Task{ID: "task-1", DurationDays: 3, DepositAmount: 3000}, nil)
	milestones.On("Get", mock.Anything, "task-1", 1).Return(eligibleMilestone(), nil)

	_, err := svc.Create(context.Background(), "task-1", 1, 1500)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// A second live claim for the same milestone surfaces the repository's
// uniqueness conflict unchanged.
func TestRefundCreate_DuplicateClaimConflicts(t *testing.T) {
	t.Parallel()
	tasks, milestones, refunds, svc := refundFixture()
	tasks.On("Get", mock.Anything, "task-1").Return(domain.Task{ID: "task-1", DurationDays: 3, DepositAmount: 3000}, nil)
	milestones.On("Get", mock.Anything, "task-1", 1).Return(eligibleMilestone(), nil)
	refunds.On("Create", mock.Anything, mock.Anything).Return("", fmt.Errorf("op=refunds.create: %w", domain.ErrConflict))

	_, err := svc.Create(context.Background(), "task-1", 1, 0)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRefundApprove(t *testing.T) {
	t.Parallel()
	_, milestones, refunds, svc := refundFixture()
	refunds.On("Get", mock.Anything, "rf-1").Return(domain.RefundRequest{ID: "rf-1", MilestoneID: "m-1", Amount: 1000, Status: domain.RefundAwaitingReview}, nil)
	refunds.On("UpdateStatus", mock.Anything, "rf-1", domain.RefundRequestApproved, "looks complete").Return(nil)
	milestones.On("GetByID", mock.Anything, "m-1").Return(eligibleMilestone(), nil)
	milestones.On("Update", mock.Anything, mock.MatchedBy(func(m domain.DailyMilestone) bool {
		return m.RefundStatus == domain.RefundApproved && m.RefundAmount == 1000
	})).Return(nil)

	require.NoError(t, svc.Approve(context.Background(), "rf-1", "looks complete"))
	milestones.AssertExpectations(t)
}

func TestRefundApprove_WrongStateConflicts(t *testing.T) {
	t.Parallel()
	_, _, refunds, svc := refundFixture()
	refunds.On("Get", mock.Anything, "rf-1").Return(domain.RefundRequest{ID: "rf-1", Status: domain.RefundRequestRejected}, nil)

	err := svc.Approve(context.Background(), "rf-1", "n")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRefundReject_RequiresNotes(t *testing.T) {
	t.Parallel()
	_, _, _, svc := refundFixture()
	err := svc.Reject(context.Background(), "rf-1", "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRefundReject(t *testing.T) {
	t.Parallel()
	_, _, refunds, svc := refundFixture()
	refunds.On("Get", mock.Anything, "rf-1").Return(domain.RefundRequest{ID: "rf-1", Status: domain.RefundAwaitingReview}, nil)
	refunds.On("UpdateStatus", mock.Anything, "rf-1", domain.RefundRequestRejected, "word padding").Return(nil)

	require.NoError(t, svc.Reject(context.Background(), "rf-1", "word padding"))
	refunds.AssertExpectations(t)
}

func TestRefundComplete(t *testing.T) {
	t.Parallel()
	_, milestones, refunds, svc := refundFixture()
	refunds.On("Get", mock.Anything, "rf-1").Return(domain.RefundRequest{ID: "rf-1", MilestoneID: "m-1", UserID: "u-1", Amount: 1000, Status: domain.RefundRequestApproved}, nil)
	refunds.On("Complete", mock.Anything, "rf-1").Return(nil)
	m := eligibleMilestone()
	m.RefundStatus = domain.RefundApproved
	milestones.On("GetByID", mock.Anything, "m-1").Return(m, nil)
	milestones.On("Update", mock.Anything, mock.MatchedBy(func(mm domain.DailyMilestone) bool {
		return mm.RefundStatus == domain.RefundCompleted
	})).Return(nil)

	require.NoError(t, svc.Complete(context.Background(), "rf-1"))
	refunds.AssertExpectations(t)
}

func TestRefundComplete_ReplayIsNoop(t *testing.T) {
	t.Parallel()
	_, _, refunds, svc := refundFixture()
	refunds.On("Get", mock.Anything, "rf-1").Return(domain.RefundRequest{ID: "rf-1", Status: domain.RefundRequestCompleted}, nil)

	require.NoError(t, svc.Complete(context.Background(), "rf-1"))
	refunds.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestRefundComplete_RequiresApproval(t *testing.T) {
	t.Parallel()
	_, _, refunds, svc := refundFixture()
	refunds.On("Get", mock.Anything, "rf-1").Return(domain.RefundRequest{ID: "rf-1", Status: domain.RefundAwaitingReview}, nil)

	err := svc.Complete(context.Background(), "rf-1")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRefundBalance(t *testing.T) {
	t.Parallel()
	_, _, refunds, svc := refundFixture()
	refunds.On("LedgerBalance", mock.Anything, "u-1").Return(int64(2500), nil)

	bal, err := svc.Balance(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), bal)
}
