package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Record is one projected status change in the audit read model. The
// authoritative trail lives in the relational status history; this copy
// exists for cross-event audit queries.
type Record struct {
	BusinessEventID uuid.UUID          `bson:"business_event_id" json:"business_event_id"`
	ProjectCode     string             `bson:"project_code" json:"project_code"`
	Status          shared.EventStatus `bson:"status" json:"status"`
	Operator        string             `bson:"operator" json:"operator"`
	Remarks         string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CorrelationID   string             `bson:"correlation_id,omitempty" json:"correlation_id,omitempty"`
	OccurredAt      time.Time          `bson:"occurred_at" json:"occurred_at"`
	ProjectedAt     time.Time          `bson:"projected_at" json:"projected_at"`
}

// FromStatusChange builds an audit record from a published status change
func FromStatusChange(change *shared.StatusChange) *Record {
	return &Record{
		BusinessEventID: change.BusinessEventID,
		ProjectCode:     change.ProjectCode,
		Status:          change.Status,
		Operator:        change.Operator,
		Remarks:         change.Remarks,
		CorrelationID:   change.CorrelationID,
		OccurredAt:      change.OccurredAt,
		ProjectedAt:     time.Now(),
	}
}
