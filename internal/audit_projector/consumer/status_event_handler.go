package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fincore-approval-engine/internal/audit_projector/service"
	"github.com/fincore-approval-engine/internal/domain/shared"
	"github.com/fincore-approval-engine/internal/platform/messaging/producers"
)

// StatusEventHandler handles incoming status change messages from Kafka
type StatusEventHandler struct {
	projectionService service.ProjectionService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewStatusEventHandler creates a new handler
func NewStatusEventHandler(
	logger *slog.Logger,
	projectionService service.ProjectionService,
	producer producers.DeadLetterPublisher,
) *StatusEventHandler {
	return &StatusEventHandler{
		projectionService: projectionService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages. Undecodable payloads go to the
// DLQ so the partition keeps moving; projection failures are returned to
// hold the offset for redelivery.
func (h *StatusEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var change shared.StatusChange
	if err := json.Unmarshal(value, &change); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal status change from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if change.CorrelationID != "" {
		logger = h.logger.With("correlation_id", change.CorrelationID)
	}

	logger.Info("Received status change for projection",
		"business_event_id", change.BusinessEventID.String(),
		"project_code", change.ProjectCode,
		"status", string(change.Status),
	)

	if err := h.projectionService.ProjectStatusChange(ctx, &change); err != nil {
		logger.Error("Failed to project status change",
			"business_event_id", change.BusinessEventID.String(),
			"error", err,
		)
		return fmt.Errorf("projecting status change for event %s failed: %w", change.BusinessEventID.String(), err)
	}

	logger.Info("Successfully projected status change", "business_event_id", change.BusinessEventID.String())
	return nil // Success, commit offset
}
