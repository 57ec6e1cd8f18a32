package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// Message is a pending status-change notification. It is written in the
// same transaction as the status transition it describes and later picked
// up by the audit projector's poller.
type Message struct {
	ID              int64               `json:"id"`
	BusinessEventID uuid.UUID           `json:"business_event_id"`
	Payload         []byte              `json:"payload"`
	Status          shared.OutboxStatus `json:"status"`
	Attempts        int                 `json:"attempts"`
	CreatedAt       time.Time           `json:"created_at"`
	LastAttemptAt   *time.Time          `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps a status change into a pending outbox message
func NewMessage(change *shared.StatusChange) (*Message, error) {
	payload, err := json.Marshal(change)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status change payload: %w", err)
	}

	return &Message{
		BusinessEventID: change.BusinessEventID,
		Payload:         payload,
		Status:          shared.OutboxStatusPending,
		Attempts:        0,
		CreatedAt:       time.Now(),
	}, nil
}
