package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/shared"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// RuleRepository implements the approval.RuleRepository interface for
// PostgreSQL. Rules are read-only configuration; the engine never writes
// them.
type RuleRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRuleRepository creates a new PostgreSQL approval rule repository
func NewRuleRepository(logger *slog.Logger, db *persistence.PostgresDB) approval.RuleRepository {
	return &RuleRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// FindActive returns the active rules for the event type and department,
// sorted ascending by approval level. Threshold filtering happens in the
// routing plan, not here, so the resolver sees the complete rule set.
func (r *RuleRepository) FindActive(ctx context.Context, eventType shared.EventType, departmentID int64) ([]*approval.Rule, error) {
	query := `
		SELECT id, event_type, department_id, approver_id, approval_level, amount_threshold_cents, is_active
		FROM approval_rules
		WHERE event_type = $1 AND department_id = $2 AND is_active
		ORDER BY approval_level
	`

	rows, err := r.querier.Query(ctx, query, eventType, departmentID)
	if err != nil {
		r.logger.Error("Failed to query approval rules",
			"event_type", string(eventType),
			"department_id", departmentID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to query approval rules: %w", err)
	}
	defer rows.Close()

	var rules []*approval.Rule
	for rows.Next() {
		var rule approval.Rule
		err := rows.Scan(
			&rule.ID,
			&rule.EventType,
			&rule.DepartmentID,
			&rule.ApproverID,
			&rule.ApprovalLevel,
			&rule.AmountThresholdCents,
			&rule.IsActive,
		)
		if err != nil {
			r.logger.Error("Failed to scan approval rule", "error", err)
			return nil, fmt.Errorf("failed to scan approval rule: %w", err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over approval rules", "error", err)
		return nil, fmt.Errorf("error iterating over approval rules: %w", err)
	}

	return rules, nil
}
