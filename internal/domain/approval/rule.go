package approval

import (
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Rule is a single routing configuration row. Rules are reference data
// supplied by an external provider and consumed read-only.
type Rule struct {
	ID                   int64            `json:"id"`
	EventType            shared.EventType `json:"event_type"`
	DepartmentID         int64            `json:"department_id"`
	ApproverID           int64            `json:"approver_id"`
	ApprovalLevel        int              `json:"approval_level"`
	AmountThresholdCents int64            `json:"amount_threshold_cents"`
	IsActive             bool             `json:"is_active"`
}
