package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Entry is one row of the append-only status audit trail. Exactly one row
// is written per event transition, in the same transaction as the status
// change itself.
type Entry struct {
	ID              int64              `json:"id"`
	BusinessEventID uuid.UUID          `json:"business_event_id"`
	OccurredAt      time.Time          `json:"occurred_at"`
	Status          shared.EventStatus `json:"status"`
	Operator        string             `json:"operator"`
	Remarks         string             `json:"remarks,omitempty"`
}

// NewEntry creates a history row for a transition performed by operator
func NewEntry(businessEventID uuid.UUID, status shared.EventStatus, operator, remarks string) *Entry {
	return &Entry{
		BusinessEventID: businessEventID,
		OccurredAt:      time.Now(),
		Status:          status,
		Operator:        operator,
		Remarks:         remarks,
	}
}
