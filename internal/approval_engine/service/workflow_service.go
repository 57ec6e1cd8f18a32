package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/config"
	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/domain/ledger"
	"github.com/fincore-approval-engine/internal/domain/outbox"
	"github.com/fincore-approval-engine/internal/domain/refdata"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// ErrNoLedgerEntries indicates a completion attempt against an event that
// has nothing posted yet
type ErrNoLedgerEntries struct {
	EventID uuid.UUID
}

func (e ErrNoLedgerEntries) Error() string {
	return "business event " + e.EventID.String() + " has no ledger entries to complete"
}

// WorkflowServiceImpl implements the WorkflowService interface
type WorkflowServiceImpl struct {
	txRunner    TxRunner
	eventRepo   event.Repository
	taskRepo    approval.TaskRepository
	ruleRepo    approval.RuleRepository
	ledgerRepo  ledger.Repository
	historyRepo history.Repository
	outboxRepo  outbox.Repository
	refdata     refdata.Provider
	submission  config.SubmissionConfig
	logger      *slog.Logger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(
	logger *slog.Logger,
	txRunner TxRunner,
	eventRepo event.Repository,
	taskRepo approval.TaskRepository,
	ruleRepo approval.RuleRepository,
	ledgerRepo ledger.Repository,
	historyRepo history.Repository,
	outboxRepo outbox.Repository,
	refdataProvider refdata.Provider,
	submission config.SubmissionConfig,
) WorkflowService {
	return &WorkflowServiceImpl{
		txRunner:    txRunner,
		eventRepo:   eventRepo,
		taskRepo:    taskRepo,
		ruleRepo:    ruleRepo,
		ledgerRepo:  ledgerRepo,
		historyRepo: historyRepo,
		outboxRepo:  outboxRepo,
		refdata:     refdataProvider,
		submission:  submission,
		logger:      logger,
	}
}

// recordStatusChange moves the event to the given status and writes the
// history row plus the outbox message inside the same transaction. All
// three commit or roll back together.
func recordStatusChange(
	ctx context.Context,
	tx pgx.Tx,
	eventRepo event.Repository,
	historyRepo history.Repository,
	outboxRepo outbox.Repository,
	evt *event.BusinessEvent,
	status shared.EventStatus,
	actor shared.Actor,
	remarks string,
	correlationID string,
) error {
	if err := eventRepo.WithTx(tx).UpdateStatus(ctx, evt.ID, status); err != nil {
		return err
	}

	entry := history.NewEntry(evt.ID, status, actor.Username, remarks)
	if err := historyRepo.WithTx(tx).Append(ctx, entry); err != nil {
		return err
	}

	msg, err := outbox.NewMessage(&shared.StatusChange{
		BusinessEventID: evt.ID,
		ProjectCode:     evt.ProjectCode,
		Status:          status,
		Operator:        actor.Username,
		Remarks:         remarks,
		CorrelationID:   correlationID,
		OccurredAt:      entry.OccurredAt,
	})
	if err != nil {
		return err
	}
	if err := outboxRepo.WithTx(tx).Create(ctx, msg); err != nil {
		return err
	}

	evt.Status = status
	return nil
}

// Submit validates the submission, resolves the routing plan, and creates
// the event with its task batch in one transaction. Losing the project-code
// race to a concurrent submission retries the whole transaction with a
// freshly computed code.
func (s *WorkflowServiceImpl) Submit(ctx context.Context, submission *EventSubmission) (*event.BusinessEvent, error) {
	if _, err := s.refdata.GetDepartment(ctx, submission.DepartmentID); err != nil {
		return nil, err
	}
	if submission.CustomerID != nil {
		if _, err := s.refdata.GetCustomer(ctx, *submission.CustomerID); err != nil {
			return nil, err
		}
	}

	rules, err := s.ruleRepo.FindActive(ctx, submission.EventType, submission.DepartmentID)
	if err != nil {
		return nil, err
	}
	plan, err := approval.BuildPlan(rules, submission.AmountCents)
	if err != nil {
		return nil, err
	}

	eventDate := submission.EventDate
	if eventDate.IsZero() {
		eventDate = time.Now()
	}

	var created *event.BusinessEvent
	for attempt := 1; ; attempt++ {
		evt, err := event.NewBusinessEvent(
			submission.EventType,
			submission.ProjectName,
			submission.AmountCents,
			eventDate,
			submission.DepartmentID,
			submission.CustomerID,
			submission.Actor.UserID,
			submission.Description,
		)
		if err != nil {
			return nil, err
		}

		err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
			seq, err := s.eventRepo.WithTx(tx).NextProjectCodeSeq(ctx, ProjectCodePrefix(evt.EventType, evt.EventDate))
			if err != nil {
				return err
			}
			evt.ProjectCode = BuildProjectCode(evt.EventType, evt.EventDate, seq)

			status := shared.EventStatusPendingApproval
			if plan.Empty() {
				status = shared.EventStatusApproved
			}
			evt.Status = status

			if err := s.eventRepo.WithTx(tx).Create(ctx, evt); err != nil {
				return err
			}

			if !plan.Empty() {
				if err := s.taskRepo.WithTx(tx).CreateBatch(ctx, plan.Tasks(evt.ID)); err != nil {
					return err
				}
			}

			remarks := "submitted"
			if plan.Empty() {
				remarks = "submitted, no approval required"
			}

			entry := history.NewEntry(evt.ID, status, submission.Actor.Username, remarks)
			if err := s.historyRepo.WithTx(tx).Append(ctx, entry); err != nil {
				return err
			}

			msg, err := outbox.NewMessage(&shared.StatusChange{
				BusinessEventID: evt.ID,
				ProjectCode:     evt.ProjectCode,
				Status:          status,
				Operator:        submission.Actor.Username,
				Remarks:         remarks,
				CorrelationID:   submission.CorrelationID,
				OccurredAt:      entry.OccurredAt,
			})
			if err != nil {
				return err
			}
			return s.outboxRepo.WithTx(tx).Create(ctx, msg)
		})
		if err == nil {
			created = evt
			break
		}

		var dupErr event.ErrDuplicateProjectCode
		if errors.As(err, &dupErr) && attempt < s.submission.CodeRetryAttempts {
			s.logger.Warn("Lost project code race, retrying submission",
				"project_code", dupErr.ProjectCode,
				"attempt", attempt,
			)
			continue
		}
		return nil, err
	}

	s.logger.Info("Business event submitted",
		"business_event_id", created.ID.String(),
		"project_code", created.ProjectCode,
		"status", string(created.Status),
		"approval_levels", len(plan.Steps),
	)
	return created, nil
}

// decide runs the shared guard chain of approve and reject and records the
// task decision. Guard order is fixed: existence, event status, permission,
// task state. The caller resolves the resulting event status.
func (s *WorkflowServiceImpl) decide(
	ctx context.Context,
	tx pgx.Tx,
	taskID uuid.UUID,
	actor shared.Actor,
	remarks string,
	taskStatus shared.TaskStatus,
) (*approval.Task, *event.BusinessEvent, error) {
	task, err := s.taskRepo.WithTx(tx).LockForUpdate(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	evt, err := s.eventRepo.WithTx(tx).LockForUpdate(ctx, task.BusinessEventID)
	if err != nil {
		return nil, nil, err
	}

	if !evt.Status.AwaitingApproval() {
		return nil, nil, event.ErrInvalidStatus{EventID: evt.ID, Status: evt.Status}
	}

	if !task.DecidableBy(actor) {
		return nil, nil, approval.ErrNotAssignedApprover{TaskID: task.ID, UserID: actor.UserID}
	}

	if !task.Pending() {
		return nil, nil, approval.ErrTaskAlreadyDecided{TaskID: task.ID}
	}

	if err := s.taskRepo.WithTx(tx).Decide(ctx, task.ID, taskStatus, remarks); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	task.Status = taskStatus
	task.DecidedAt = &now
	task.Remarks = remarks

	return task, evt, nil
}

// Approve records a positive decision and advances or finishes the chain
func (s *WorkflowServiceImpl) Approve(ctx context.Context, taskID uuid.UUID, actor shared.Actor, remarks string, correlationID string) (*DecisionResult, error) {
	var result DecisionResult

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		task, evt, err := s.decide(ctx, tx, taskID, actor, remarks, shared.TaskStatusApproved)
		if err != nil {
			return err
		}

		next, err := s.taskRepo.WithTx(tx).NextPending(ctx, evt.ID, task.ApprovalLevel)
		if err != nil {
			return err
		}

		status := shared.EventStatusApproved
		if next != nil {
			status = shared.EventStatusInApproval
		}
		if err := recordStatusChange(ctx, tx, s.eventRepo, s.historyRepo, s.outboxRepo, evt, status, actor, remarks, correlationID); err != nil {
			return err
		}

		result = DecisionResult{
			Task:        task,
			EventStatus: status,
			HasNext:     next != nil,
			NextTask:    next,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Approval task approved",
		"task_id", taskID.String(),
		"approver_id", actor.UserID,
		"event_status", string(result.EventStatus),
		"has_next", result.HasNext,
	)
	return &result, nil
}

// Reject records a negative decision. The event goes to REJECTED no matter
// how many sibling tasks are still pending; those rows stay untouched.
func (s *WorkflowServiceImpl) Reject(ctx context.Context, taskID uuid.UUID, actor shared.Actor, remarks string, correlationID string) (*DecisionResult, error) {
	var result DecisionResult

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		task, evt, err := s.decide(ctx, tx, taskID, actor, remarks, shared.TaskStatusRejected)
		if err != nil {
			return err
		}

		if err := recordStatusChange(ctx, tx, s.eventRepo, s.historyRepo, s.outboxRepo, evt, shared.EventStatusRejected, actor, remarks, correlationID); err != nil {
			return err
		}

		result = DecisionResult{
			Task:        task,
			EventStatus: shared.EventStatusRejected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Approval task rejected",
		"task_id", taskID.String(),
		"approver_id", actor.UserID,
	)
	return &result, nil
}

// Complete closes an IN_PROGRESS event. At least one ledger entry must
// exist; an event that never got a posting cannot be completed.
func (s *WorkflowServiceImpl) Complete(ctx context.Context, eventID uuid.UUID, actor shared.Actor, correlationID string) (shared.EventStatus, error) {
	var status shared.EventStatus

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		evt, err := s.eventRepo.WithTx(tx).LockForUpdate(ctx, eventID)
		if err != nil {
			return err
		}

		if evt.Status != shared.EventStatusInProgress {
			return event.ErrInvalidStatus{EventID: evt.ID, Status: evt.Status}
		}

		count, err := s.ledgerRepo.WithTx(tx).CountByEventID(ctx, eventID)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNoLedgerEntries{EventID: eventID}
		}

		if err := recordStatusChange(ctx, tx, s.eventRepo, s.historyRepo, s.outboxRepo, evt, shared.EventStatusCompleted, actor, "completed", correlationID); err != nil {
			return err
		}
		status = evt.Status
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Business event completed", "business_event_id", eventID.String())
	return status, nil
}

// GetEvent returns the event together with its approval tasks
func (s *WorkflowServiceImpl) GetEvent(ctx context.Context, eventID uuid.UUID) (*event.BusinessEvent, []*approval.Task, error) {
	evt, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	return evt, tasks, nil
}

// GetHistory returns the event's status trail, oldest first
func (s *WorkflowServiceImpl) GetHistory(ctx context.Context, eventID uuid.UUID) ([]*history.Entry, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByEventID(ctx, eventID)
}
