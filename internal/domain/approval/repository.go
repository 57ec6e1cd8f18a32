package approval

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// TaskRepository defines approval task persistence operations
type TaskRepository interface {
	// CreateBatch stores the full task batch for one event. Callers run it
	// inside the submission transaction so partial batches are never visible.
	CreateBatch(ctx context.Context, tasks []*Task) error

	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)

	// LockForUpdate acquires a row lock on the task so that concurrent
	// decisions on the same task serialize to exactly one winner.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Task, error)

	// Decide records the terminal task status together with decided_at and
	// remarks. It only touches Pending rows and reports the stale state via
	// ErrTaskAlreadyDecided otherwise.
	Decide(ctx context.Context, id uuid.UUID, status shared.TaskStatus, remarks string) error

	// NextPending returns the Pending task with the smallest level strictly
	// greater than afterLevel, or nil when no such task remains.
	NextPending(ctx context.Context, businessEventID uuid.UUID, afterLevel int) (*Task, error)

	GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*Task, error)

	WithTx(tx pgx.Tx) TaskRepository
}

// RuleRepository reads approval routing configuration
type RuleRepository interface {
	// FindActive returns the active rules configured for the event type and
	// department, sorted ascending by approval level.
	FindActive(ctx context.Context, eventType shared.EventType, departmentID int64) ([]*Rule, error)
}

// ErrTaskNotFound indicates a missing approval task
type ErrTaskNotFound struct {
	TaskID uuid.UUID
}

func (e ErrTaskNotFound) Error() string {
	return "approval task not found: " + e.TaskID.String()
}

// ErrTaskAlreadyDecided indicates the task left the Pending state before
// this decision arrived (the Conflict failure of the error taxonomy)
type ErrTaskAlreadyDecided struct {
	TaskID uuid.UUID
}

func (e ErrTaskAlreadyDecided) Error() string {
	return "approval task already decided: " + e.TaskID.String()
}

// ErrNotAssignedApprover indicates the actor may not decide the task
type ErrNotAssignedApprover struct {
	TaskID uuid.UUID
	UserID int64
}

func (e ErrNotAssignedApprover) Error() string {
	return "user " + strconv.FormatInt(e.UserID, 10) + " is not allowed to decide approval task " + e.TaskID.String()
}

// ErrAmbiguousRules indicates two active rules share an approval level for
// the same event type and department (the ConfigConflict failure)
type ErrAmbiguousRules struct {
	EventType     shared.EventType
	DepartmentID  int64
	ApprovalLevel int
}

func (e ErrAmbiguousRules) Error() string {
	return "ambiguous approval rules for " + string(e.EventType) +
		"/department " + strconv.FormatInt(e.DepartmentID, 10) +
		": duplicate level " + strconv.Itoa(e.ApprovalLevel)
}
