package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/event"
	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/domain/ledger"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// TxRunner runs a function inside one database transaction. Satisfied by
// persistence.PostgresDB; mocked in tests.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// EventSubmission carries the validated input of a submit request
type EventSubmission struct {
	EventType     shared.EventType
	ProjectName   string
	AmountCents   int64
	EventDate     time.Time
	DepartmentID  int64
	CustomerID    *int64
	Description   string
	Actor         shared.Actor
	CorrelationID string
}

// DecisionResult reports the outcome of one approval decision
type DecisionResult struct {
	Task        *approval.Task
	EventStatus shared.EventStatus
	HasNext     bool
	NextTask    *approval.Task
}

// WorkflowService drives the business event lifecycle: submission through
// the approval chain up to completion. Every transition commits its status
// change, history row, and outbox message atomically.
type WorkflowService interface {
	// Submit creates the event with its routing plan. An empty plan means
	// immediate auto-approval. Retries the whole transaction a bounded number
	// of times when a concurrent submission wins the project-code race.
	Submit(ctx context.Context, submission *EventSubmission) (*event.BusinessEvent, error)

	// Approve records a positive decision on the task and advances the chain:
	// the event moves to IN_APPROVAL while pending tasks remain, APPROVED once
	// the chain is exhausted.
	Approve(ctx context.Context, taskID uuid.UUID, actor shared.Actor, remarks string, correlationID string) (*DecisionResult, error)

	// Reject records a negative decision; a single rejection forces the event
	// to REJECTED regardless of sibling tasks.
	Reject(ctx context.Context, taskID uuid.UUID, actor shared.Actor, remarks string, correlationID string) (*DecisionResult, error)

	// Complete closes an IN_PROGRESS event that has at least one ledger entry
	Complete(ctx context.Context, eventID uuid.UUID, actor shared.Actor, correlationID string) (shared.EventStatus, error)

	// GetEvent returns the event together with its approval tasks
	GetEvent(ctx context.Context, eventID uuid.UUID) (*event.BusinessEvent, []*approval.Task, error)

	// GetHistory returns the event's status trail, oldest first
	GetHistory(ctx context.Context, eventID uuid.UUID) ([]*history.Entry, error)
}

// PostingInput carries the validated input of a ledger posting request
type PostingInput struct {
	AccountCode    string
	AmountCents    int64
	Direction      shared.Direction
	FiscalYear     int
	FiscalMonth    int
	IdempotencyKey string
	CorrelationID  string
}

// PostingResult reports a created or replayed ledger entry together with
// the event status after the posting.
type PostingResult struct {
	Entry       *ledger.Entry
	EventStatus shared.EventStatus
	Replayed    bool
}

// PostingService creates ledger entries against approved events and keeps
// budget consumption in step with EXPENSE postings.
type PostingService interface {
	Post(ctx context.Context, eventID uuid.UUID, input *PostingInput, actor shared.Actor) (*PostingResult, error)
	ListEntries(ctx context.Context, eventID uuid.UUID) ([]*ledger.Entry, error)
}
