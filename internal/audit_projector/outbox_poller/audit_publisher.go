package outbox_poller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fincore-approval-engine/internal/domain/outbox"
	"github.com/fincore-approval-engine/internal/domain/shared"
	"github.com/fincore-approval-engine/internal/platform/messaging/producers"
)

// AuditPublisher pushes outbox messages onto the status-change topic
type AuditPublisher interface {
	PublishStatusChange(ctx context.Context, message *outbox.Message) error
}

// AuditPublisherImpl implements AuditPublisher
type AuditPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewAuditPublisher creates a new publisher
func NewAuditPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) AuditPublisher {
	return &AuditPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishStatusChange decodes the outbox payload, publishes it keyed by
// event ID, and marks the message PROCESSED. A payload that cannot be
// decoded is dead configuration, not a retryable failure: it is flipped to
// FAILED_TO_PUBLISH immediately.
func (p *AuditPublisherImpl) PublishStatusChange(ctx context.Context, message *outbox.Message) error {
	var change shared.StatusChange
	if err := json.Unmarshal(message.Payload, &change); err != nil {
		p.logger.Error("Failed to unmarshal status change from outbox payload",
			"outbox_id", message.ID, "business_event_id", message.BusinessEventID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if change.CorrelationID != "" {
		logger = p.logger.With("correlation_id", change.CorrelationID)
	}

	logger.Info("Publishing outbox status change",
		"outbox_id", message.ID,
		"business_event_id", change.BusinessEventID.String(),
		"status", string(change.Status),
	)

	if err := p.producer.Publish(ctx, change.BusinessEventID.String(), &change); err != nil {
		return fmt.Errorf("failed to publish status change for outbox %d: %w", message.ID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "business_event_id", change.BusinessEventID.String(), "error", err,
		)
		return fmt.Errorf("publish for outbox %d OK, but failed to mark it PROCESSED: %w", message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID)
	return nil
}
