package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/history"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// HistoryRepository implements the history.Repository interface for
// PostgreSQL. The table is append-only.
type HistoryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewHistoryRepository creates a new PostgreSQL status history repository
func NewHistoryRepository(logger *slog.Logger, db *persistence.PostgresDB) history.Repository {
	return &HistoryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *HistoryRepository) WithTx(tx pgx.Tx) history.Repository {
	return &HistoryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Append writes one history row. Callers run it in the same transaction as
// the status change it records.
func (r *HistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	query := `
		INSERT INTO status_history (business_event_id, occurred_at, status, operator, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		entry.BusinessEventID,
		entry.OccurredAt,
		entry.Status,
		entry.Operator,
		entry.Remarks,
	).Scan(&entry.ID)
	if err != nil {
		r.logger.Error("Failed to append status history entry",
			"business_event_id", entry.BusinessEventID.String(),
			"status", string(entry.Status),
			"error", err,
		)
		return fmt.Errorf("failed to append status history entry: %w", err)
	}

	return nil
}

// GetByEventID returns the full status trail of one event, oldest first
func (r *HistoryRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*history.Entry, error) {
	query := `
		SELECT id, business_event_id, occurred_at, status, operator, remarks
		FROM status_history
		WHERE business_event_id = $1
		ORDER BY occurred_at, id
	`

	rows, err := r.querier.Query(ctx, query, businessEventID)
	if err != nil {
		r.logger.Error("Failed to get status history for event", "business_event_id", businessEventID.String(), "error", err)
		return nil, fmt.Errorf("failed to get status history for event: %w", err)
	}
	defer rows.Close()

	var entries []*history.Entry
	for rows.Next() {
		var entry history.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.BusinessEventID,
			&entry.OccurredAt,
			&entry.Status,
			&entry.Operator,
			&entry.Remarks,
		)
		if err != nil {
			r.logger.Error("Failed to scan status history entry", "error", err)
			return nil, fmt.Errorf("failed to scan status history entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over status history", "error", err)
		return nil, fmt.Errorf("error iterating over status history: %w", err)
	}

	return entries, nil
}
