package approval

import (
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Task is one approver's step within an event's routing plan.
// Tasks are created Pending as an atomic batch at submission and are
// immutable once decided.
type Task struct {
	ID              uuid.UUID         `json:"id"`
	BusinessEventID uuid.UUID         `json:"business_event_id"`
	ApproverID      int64             `json:"approver_id"`
	ApprovalLevel   int               `json:"approval_level"`
	Status          shared.TaskStatus `json:"status"`
	DecidedAt       *time.Time        `json:"decided_at,omitempty"`
	Remarks         string            `json:"remarks,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Pending reports whether the task still awaits a decision
func (t *Task) Pending() bool {
	return t.Status == shared.TaskStatusPending
}

// DecidableBy reports whether the actor may decide this task: either the
// assigned approver or an administrator.
func (t *Task) DecidableBy(actor shared.Actor) bool {
	return t.ApproverID == actor.UserID || actor.IsAdmin()
}
