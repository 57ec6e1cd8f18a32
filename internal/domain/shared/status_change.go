package shared

import (
	"time"

	"github.com/google/uuid"
)

// StatusChange is the message carried through the outbox and the
// status-change topic for every business event transition. It mirrors the
// status-history row written in the same transaction.
type StatusChange struct {
	BusinessEventID uuid.UUID   `json:"business_event_id"`
	ProjectCode     string      `json:"project_code"`
	Status          EventStatus `json:"status"`
	Operator        string      `json:"operator"`
	Remarks         string      `json:"remarks,omitempty"`
	CorrelationID   string      `json:"correlation_id,omitempty"`
	OccurredAt      time.Time   `json:"occurred_at"`
}
