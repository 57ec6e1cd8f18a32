package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fincore-approval-engine/internal/domain/audit"
	"github.com/fincore-approval-engine/internal/domain/shared"
)

// ProjectionServiceImpl implements the ProjectionService interface
type ProjectionServiceImpl struct {
	auditRepo audit.Repository
	logger    *slog.Logger
}

// NewProjectionService creates a new projection service
func NewProjectionService(logger *slog.Logger, auditRepo audit.Repository) ProjectionService {
	return &ProjectionServiceImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// ProjectStatusChange upserts the change into the audit store. Kafka
// redelivery is expected; the upsert key absorbs duplicates.
func (s *ProjectionServiceImpl) ProjectStatusChange(ctx context.Context, change *shared.StatusChange) error {
	logger := s.logger
	if change.CorrelationID != "" {
		logger = s.logger.With("correlation_id", change.CorrelationID)
	}

	record := audit.FromStatusChange(change)
	if err := s.auditRepo.Upsert(ctx, record); err != nil {
		logger.Error("Failed to project status change",
			"business_event_id", change.BusinessEventID.String(),
			"status", string(change.Status),
			"error", err,
		)
		return fmt.Errorf("failed to project status change for event %s: %w", change.BusinessEventID.String(), err)
	}

	logger.Info("Projected status change",
		"business_event_id", change.BusinessEventID.String(),
		"project_code", change.ProjectCode,
		"status", string(change.Status),
	)
	return nil
}
