package service

import (
	"context"

	"github.com/fincore-approval-engine/internal/domain/shared"
)

// ProjectionService applies one status change to the audit read model
type ProjectionService interface {
	ProjectStatusChange(ctx context.Context, change *shared.StatusChange) error
}
