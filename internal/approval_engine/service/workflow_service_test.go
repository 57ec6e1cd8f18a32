package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fincore-approval-engine/internal/config"
	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/domain/refdata"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

type workflowMocks struct {
	eventRepo   *MockEventRepository
	taskRepo    *MockTaskRepository
	ruleRepo    *MockRuleRepository
	ledgerRepo  *MockLedgerRepository
	historyRepo *MockHistoryRepository
	outboxRepo  *MockOutboxRepository
	refdata     *MockRefdataProvider
}

func newWorkflowService(t *testing.T) (WorkflowService, *workflowMocks) {
	t.Helper()
	m := &workflowMocks{
		eventRepo:   new(MockEventRepository),
		taskRepo:    new(MockTaskRepository),
		ruleRepo:    new(MockRuleRepository),
		ledgerRepo:  new(MockLedgerRepository),
		historyRepo: new(MockHistoryRepository),
		outboxRepo:  new(MockOutboxRepository),
		refdata:     new(MockRefdataProvider),
	}
	svc := NewWorkflowService(
		newTestLogger(),
		&fakeTxRunner{},
		m.eventRepo,
		m.taskRepo,
		m.ruleRepo,
		m.ledgerRepo,
		m.historyRepo,
		m.outboxRepo,
		m.refdata,
		config.SubmissionConfig{CodeRetryAttempts: 3},
	)
	return svc, m
}

func (m *workflowMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.eventRepo.AssertExpectations(t)
	m.taskRepo.AssertExpectations(t)
	m.ruleRepo.AssertExpectations(t)
	m.ledgerRepo.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
	m.outboxRepo.AssertExpectations(t)
	m.refdata.AssertExpectations(t)
}

func submission() *EventSubmission {
	return &EventSubmission{
		EventType:     shared.EventTypePurchase,
		ProjectName:   "Warehouse racking",
		AmountCents:   750000,
		EventDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DepartmentID:  2,
		Description:   "Q1 capacity expansion",
		Actor:         shared.Actor{UserID: 42, Username: "wael", Role: "submitter"},
		CorrelationID: "corr-submit",
	}
}

func TestWorkflowServiceImpl_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessWithApprovalChain", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()

		m.refdata.On("GetDepartment", ctx, int64(2)).Return(&refdata.Department{ID: 2, Name: "Procurement"}, nil).Once()
		m.ruleRepo.On("FindActive", ctx, shared.EventTypePurchase, int64(2)).Return([]*approval.Rule{
			{ApproverID: 10, ApprovalLevel: 1, IsActive: true},
			{ApproverID: 20, ApprovalLevel: 2, IsActive: true},
		}, nil).Once()
		m.eventRepo.On("NextProjectCodeSeq", ctx, "CG-20260315-").Return(5, nil).Once()
		m.eventRepo.On("Create", ctx, mock.AnythingOfType("*event.BusinessEvent")).Return(nil).Once()
		m.taskRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*approval.Task")).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		evt, err := svc.Submit(ctx, sub)

		require.NoError(t, err)
		require.NotNil(t, evt)
		assert.Equal(t, "CG-20260315-0005", evt.ProjectCode)
		assert.Equal(t, shared.EventStatusPendingApproval, evt.Status)
		assert.Equal(t, int64(42), evt.CreatedBy)
		m.assertExpectations(t)
	})

	t.Run("EmptyPlanAutoApproves", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()

		m.refdata.On("GetDepartment", ctx, int64(2)).Return(&refdata.Department{ID: 2, Name: "Procurement"}, nil).Once()
		m.ruleRepo.On("FindActive", ctx, shared.EventTypePurchase, int64(2)).Return([]*approval.Rule{}, nil).Once()
		m.eventRepo.On("NextProjectCodeSeq", ctx, "CG-20260315-").Return(1, nil).Once()
		m.eventRepo.On("Create", ctx, mock.AnythingOfType("*event.BusinessEvent")).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		evt, err := svc.Submit(ctx, sub)

		require.NoError(t, err)
		assert.Equal(t, shared.EventStatusApproved, evt.Status)
		m.taskRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("UnknownDepartment", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()
		sub.DepartmentID = 99

		m.refdata.On("GetDepartment", ctx, int64(99)).Return(nil, refdata.ErrDepartmentNotFound{DepartmentID: 99}).Once()

		evt, err := svc.Submit(ctx, sub)

		assert.Nil(t, evt)
		var notFound refdata.ErrDepartmentNotFound
		assert.ErrorAs(t, err, &notFound)
		m.ruleRepo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()
		customerID := int64(77)
		sub.CustomerID = &customerID

		m.refdata.On("GetDepartment", ctx, int64(2)).Return(&refdata.Department{ID: 2, Name: "Procurement"}, nil).Once()
		m.refdata.On("GetCustomer", ctx, int64(77)).Return(nil, refdata.ErrCustomerNotFound{CustomerID: 77}).Once()

		evt, err := svc.Submit(ctx, sub)

		assert.Nil(t, evt)
		var notFound refdata.ErrCustomerNotFound
		assert.ErrorAs(t, err, &notFound)
		m.assertExpectations(t)
	})

	t.Run("AmbiguousRulesRejectedBeforeAnyWrite", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()

		m.refdata.On("GetDepartment", ctx, int64(2)).Return(&refdata.Department{ID: 2, Name: "Procurement"}, nil).Once()
		m.ruleRepo.On("FindActive", ctx, shared.EventTypePurchase, int64(2)).Return([]*approval.Rule{
			{ApproverID: 10, ApprovalLevel: 1, IsActive: true},
			{ApproverID: 20, ApprovalLevel: 1, IsActive: true},
		}, nil).Once()

		evt, err := svc.Submit(ctx, sub)

		assert.Nil(t, evt)
		var ambiguous approval.ErrAmbiguousRules
		assert.ErrorAs(t, err, &ambiguous)
		m.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("RetriesLostProjectCodeRace", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()

		m.refdata.On("GetDepartment", ctx, int64(2)).Return(&refdata.Department{ID: 2, Name: "Procurement"}, nil).Once()
		m.ruleRepo.On("FindActive", ctx, shared.EventTypePurchase, int64(2)).Return([]*approval.Rule{
			{ApproverID: 10, ApprovalLevel: 1, IsActive: true},
		}, nil).Once()

		// First attempt loses the race, second attempt lands with the next sequence
		m.eventRepo.On("NextProjectCodeSeq", ctx, "CG-20260315-").Return(3, nil).Once()
		m.eventRepo.On("Create", ctx, mock.AnythingOfType("*event.BusinessEvent")).
			Return(event.ErrDuplicateProjectCode{ProjectCode: "CG-20260315-0003"}).Once()
		m.eventRepo.On("NextProjectCodeSeq", ctx, "CG-20260315-").Return(4, nil).Once()
		m.eventRepo.On("Create", ctx, mock.AnythingOfType("*event.BusinessEvent")).Return(nil).Once()
		m.taskRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*approval.Task")).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		evt, err := svc.Submit(ctx, sub)

		require.NoError(t, err)
		assert.Equal(t, "CG-20260315-0004", evt.ProjectCode)
		m.assertExpectations(t)
	})

	t.Run("GivesUpAfterRetryBudget", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		sub := submission()
		dupErr := event.ErrDuplicateProjectCode{ProjectCode: "CG-20260315-0003"}

		m.refdata.On("GetDepartment", ctx, int64(2)).Return(&refdata.Department{ID: 2, Name: "Procurement"}, nil).Once()
		m.ruleRepo.On("FindActive", ctx, shared.EventTypePurchase, int64(2)).Return([]*approval.Rule{
			{ApproverID: 10, ApprovalLevel: 1, IsActive: true},
		}, nil).Once()
		m.eventRepo.On("NextProjectCodeSeq", ctx, "CG-20260315-").Return(3, nil).Times(3)
		m.eventRepo.On("Create", ctx, mock.AnythingOfType("*event.BusinessEvent")).Return(dupErr).Times(3)

		evt, err := svc.Submit(ctx, sub)

		assert.Nil(t, evt)
		var dup event.ErrDuplicateProjectCode
		assert.ErrorAs(t, err, &dup)
		m.assertExpectations(t)
	})
}

func pendingTask(eventID uuid.UUID, approverID int64, level int) *approval.Task {
	return &approval.Task{
		ID:              uuid.New(),
		BusinessEventID: eventID,
		ApproverID:      approverID,
		ApprovalLevel:   level,
		Status:          shared.TaskStatusPending,
		CreatedAt:       time.Now(),
	}
}

func eventInStatus(status shared.EventStatus) *event.BusinessEvent {
	return &event.BusinessEvent{
		ID:           uuid.New(),
		EventType:    shared.EventTypePurchase,
		ProjectName:  "Warehouse racking",
		ProjectCode:  "CG-20260315-0005",
		AmountCents:  750000,
		DepartmentID: 2,
		CreatedBy:    42,
		Status:       status,
	}
}

func TestWorkflowServiceImpl_Approve(t *testing.T) {
	ctx := context.Background()
	approver := shared.Actor{UserID: 10, Username: "lina", Role: "approver"}

	t.Run("AdvancesToNextLevel", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusPendingApproval)
		task := pendingTask(evt.ID, 10, 1)
		next := pendingTask(evt.ID, 20, 2)

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.taskRepo.On("Decide", ctx, task.ID, shared.TaskStatusApproved, "looks good").Return(nil).Once()
		m.taskRepo.On("NextPending", ctx, evt.ID, 1).Return(next, nil).Once()
		m.eventRepo.On("UpdateStatus", ctx, evt.ID, shared.EventStatusInApproval).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		result, err := svc.Approve(ctx, task.ID, approver, "looks good", "corr-1")

		require.NoError(t, err)
		assert.Equal(t, shared.EventStatusInApproval, result.EventStatus)
		assert.True(t, result.HasNext)
		require.NotNil(t, result.NextTask)
		assert.Equal(t, next.ID, result.NextTask.ID)
		assert.Equal(t, shared.TaskStatusApproved, result.Task.Status)
		require.NotNil(t, result.Task.DecidedAt)
		m.assertExpectations(t)
	})

	t.Run("FinalLevelApprovesEvent", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusInApproval)
		task := pendingTask(evt.ID, 10, 2)

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.taskRepo.On("Decide", ctx, task.ID, shared.TaskStatusApproved, "").Return(nil).Once()
		m.taskRepo.On("NextPending", ctx, evt.ID, 2).Return(nil, nil).Once()
		m.eventRepo.On("UpdateStatus", ctx, evt.ID, shared.EventStatusApproved).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		result, err := svc.Approve(ctx, task.ID, approver, "", "corr-2")

		require.NoError(t, err)
		assert.Equal(t, shared.EventStatusApproved, result.EventStatus)
		assert.False(t, result.HasNext)
		assert.Nil(t, result.NextTask)
		m.assertExpectations(t)
	})

	t.Run("TaskNotFound", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		taskID := uuid.New()

		m.taskRepo.On("LockForUpdate", ctx, taskID).Return(nil, approval.ErrTaskNotFound{TaskID: taskID}).Once()

		result, err := svc.Approve(ctx, taskID, approver, "", "")

		assert.Nil(t, result)
		var notFound approval.ErrTaskNotFound
		assert.ErrorAs(t, err, &notFound)
		m.assertExpectations(t)
	})

	t.Run("EventStatusCheckedBeforePermission", func(t *testing.T) {
		// A stranger deciding a task on an already-approved event must see the
		// status failure, not the permission failure.
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusApproved)
		task := pendingTask(evt.ID, 10, 1)
		stranger := shared.Actor{UserID: 999, Username: "mallory", Role: "approver"}

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()

		result, err := svc.Approve(ctx, task.ID, stranger, "", "")

		assert.Nil(t, result)
		var invalidStatus event.ErrInvalidStatus
		require.ErrorAs(t, err, &invalidStatus)
		assert.Equal(t, shared.EventStatusApproved, invalidStatus.Status)
		m.taskRepo.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("NotAssignedApprover", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusPendingApproval)
		task := pendingTask(evt.ID, 10, 1)
		stranger := shared.Actor{UserID: 999, Username: "mallory", Role: "approver"}

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()

		result, err := svc.Approve(ctx, task.ID, stranger, "", "")

		assert.Nil(t, result)
		var notAssigned approval.ErrNotAssignedApprover
		require.ErrorAs(t, err, &notAssigned)
		assert.Equal(t, int64(999), notAssigned.UserID)
		m.assertExpectations(t)
	})

	t.Run("AdminMayDecideAnyTask", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusPendingApproval)
		task := pendingTask(evt.ID, 10, 1)
		admin := shared.Actor{UserID: 1, Username: "root", Role: shared.RoleAdmin}

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.taskRepo.On("Decide", ctx, task.ID, shared.TaskStatusApproved, "").Return(nil).Once()
		m.taskRepo.On("NextPending", ctx, evt.ID, 1).Return(nil, nil).Once()
		m.eventRepo.On("UpdateStatus", ctx, evt.ID, shared.EventStatusApproved).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		result, err := svc.Approve(ctx, task.ID, admin, "", "")

		require.NoError(t, err)
		assert.Equal(t, shared.EventStatusApproved, result.EventStatus)
		m.assertExpectations(t)
	})

	t.Run("TaskAlreadyDecided", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusInApproval)
		task := pendingTask(evt.ID, 10, 1)
		task.Status = shared.TaskStatusApproved

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()

		result, err := svc.Approve(ctx, task.ID, approver, "", "")

		assert.Nil(t, result)
		var alreadyDecided approval.ErrTaskAlreadyDecided
		assert.ErrorAs(t, err, &alreadyDecided)
		m.assertExpectations(t)
	})
}

func TestWorkflowServiceImpl_Reject(t *testing.T) {
	ctx := context.Background()
	approver := shared.Actor{UserID: 10, Username: "lina", Role: "approver"}

	t.Run("RejectionForcesEventRejected", func(t *testing.T) {
		// A first-level rejection ends the workflow even though level two is
		// still pending; the sibling task row stays untouched.
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusPendingApproval)
		task := pendingTask(evt.ID, 10, 1)

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.taskRepo.On("Decide", ctx, task.ID, shared.TaskStatusRejected, "budget exceeded").Return(nil).Once()
		m.eventRepo.On("UpdateStatus", ctx, evt.ID, shared.EventStatusRejected).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		result, err := svc.Reject(ctx, task.ID, approver, "budget exceeded", "corr-3")

		require.NoError(t, err)
		assert.Equal(t, shared.EventStatusRejected, result.EventStatus)
		assert.Equal(t, shared.TaskStatusRejected, result.Task.Status)
		m.taskRepo.AssertNotCalled(t, "NextPending", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("DecideFailurePropagates", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusPendingApproval)
		task := pendingTask(evt.ID, 10, 1)
		dbErr := errors.New("connection reset")

		m.taskRepo.On("LockForUpdate", ctx, task.ID).Return(task, nil).Once()
		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.taskRepo.On("Decide", ctx, task.ID, shared.TaskStatusRejected, "").Return(dbErr).Once()

		result, err := svc.Reject(ctx, task.ID, approver, "", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, dbErr)
		m.assertExpectations(t)
	})
}

func TestWorkflowServiceImpl_Complete(t *testing.T) {
	ctx := context.Background()
	actor := shared.Actor{UserID: 42, Username: "wael", Role: "submitter"}

	t.Run("Success", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusInProgress)

		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.ledgerRepo.On("CountByEventID", ctx, evt.ID).Return(int64(3), nil).Once()
		m.eventRepo.On("UpdateStatus", ctx, evt.ID, shared.EventStatusCompleted).Return(nil).Once()
		m.historyRepo.On("Append", ctx, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
		m.outboxRepo.On("Create", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		status, err := svc.Complete(ctx, evt.ID, actor, "corr-4")

		require.NoError(t, err)
		assert.Equal(t, shared.EventStatusCompleted, status)
		m.assertExpectations(t)
	})

	t.Run("NotInProgress", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusApproved)

		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()

		_, err := svc.Complete(ctx, evt.ID, actor, "")

		var invalidStatus event.ErrInvalidStatus
		assert.ErrorAs(t, err, &invalidStatus)
		m.ledgerRepo.AssertNotCalled(t, "CountByEventID", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("NoLedgerEntries", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusInProgress)

		m.eventRepo.On("LockForUpdate", ctx, evt.ID).Return(evt, nil).Once()
		m.ledgerRepo.On("CountByEventID", ctx, evt.ID).Return(int64(0), nil).Once()

		_, err := svc.Complete(ctx, evt.ID, actor, "")

		var noEntries ErrNoLedgerEntries
		require.ErrorAs(t, err, &noEntries)
		assert.Equal(t, evt.ID, noEntries.EventID)
		m.eventRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}

func TestWorkflowServiceImpl_GetHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		evt := eventInStatus(shared.EventStatusInProgress)
		trail := []*history.Entry{
			{BusinessEventID: evt.ID, Status: shared.EventStatusPendingApproval, Operator: "wael"},
			{BusinessEventID: evt.ID, Status: shared.EventStatusApproved, Operator: "lina"},
		}

		m.eventRepo.On("GetByID", ctx, evt.ID).Return(evt, nil).Once()
		m.historyRepo.On("GetByEventID", ctx, evt.ID).Return(trail, nil).Once()

		entries, err := svc.GetHistory(ctx, evt.ID)

		require.NoError(t, err)
		assert.Equal(t, trail, entries)
		m.assertExpectations(t)
	})

	t.Run("EventNotFound", func(t *testing.T) {
		svc, m := newWorkflowService(t)
		eventID := uuid.New()

		m.eventRepo.On("GetByID", ctx, eventID).Return(nil, event.ErrEventNotFound{EventID: eventID}).Once()

		entries, err := svc.GetHistory(ctx, eventID)

		assert.Nil(t, entries)
		var notFound event.ErrEventNotFound
		assert.ErrorAs(t, err, &notFound)
		m.historyRepo.AssertNotCalled(t, "GetByEventID", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}
