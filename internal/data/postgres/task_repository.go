package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/approval"
	"github.com/fincore-approval-engine/internal/domain/shared"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// TaskRepository implements the approval.TaskRepository interface for PostgreSQL
type TaskRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTaskRepository creates a new PostgreSQL approval task repository
func NewTaskRepository(logger *slog.Logger, db *persistence.PostgresDB) approval.TaskRepository {
	return &TaskRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *TaskRepository) WithTx(tx pgx.Tx) approval.TaskRepository {
	return &TaskRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// CreateBatch stores the full task batch for one event. Callers run it
// inside the submission transaction, so either every task of the plan
// becomes visible or none do.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []*approval.Task) error {
	query := `
		INSERT INTO approval_tasks (id, business_event_id, approver_id, approval_level, status, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, task := range tasks {
		_, err := r.querier.Exec(ctx, query,
			task.ID,
			task.BusinessEventID,
			task.ApproverID,
			task.ApprovalLevel,
			task.Status,
			task.Remarks,
			task.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create approval task",
				"business_event_id", task.BusinessEventID.String(),
				"approval_level", task.ApprovalLevel,
				"error", err,
			)
			return fmt.Errorf("failed to create approval task batch: %w", err)
		}
	}

	return nil
}

const taskColumns = `id, business_event_id, approver_id, approval_level, status, decided_at, remarks, created_at`

func scanTask(row pgx.Row) (*approval.Task, error) {
	var task approval.Task
	err := row.Scan(
		&task.ID,
		&task.BusinessEventID,
		&task.ApproverID,
		&task.ApprovalLevel,
		&task.Status,
		&task.DecidedAt,
		&task.Remarks,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByID retrieves an approval task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*approval.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM approval_tasks
		WHERE id = $1
	`

	task, err := scanTask(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, approval.ErrTaskNotFound{TaskID: id}
		}
		r.logger.Error("Failed to get approval task", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get approval task: %w", err)
	}

	return task, nil
}

// LockForUpdate obtains a row lock on the task so racing decisions on one
// task serialize to exactly one winner. Must run inside a transaction.
func (r *TaskRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*approval.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM approval_tasks
		WHERE id = $1
		FOR UPDATE
	`

	task, err := scanTask(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, approval.ErrTaskNotFound{TaskID: id}
		}
		r.logger.Error("Failed to lock approval task for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock approval task for update: %w", err)
	}

	return task, nil
}

// Decide records a terminal task status. The Pending guard in the WHERE
// clause makes the decision idempotent at the store level: a task that
// already left Pending reports ErrTaskAlreadyDecided.
func (r *TaskRepository) Decide(ctx context.Context, id uuid.UUID, status shared.TaskStatus, remarks string) error {
	query := `
		UPDATE approval_tasks
		SET status = $1, decided_at = NOW(), remarks = $2
		WHERE id = $3 AND status = $4
	`

	result, err := r.querier.Exec(ctx, query, status, remarks, id, shared.TaskStatusPending)
	if err != nil {
		r.logger.Error("Failed to decide approval task", "id", id.String(), "status", string(status), "error", err)
		return fmt.Errorf("failed to decide approval task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return approval.ErrTaskAlreadyDecided{TaskID: id}
	}

	return nil
}

// NextPending returns the Pending task with the smallest approval level
// strictly greater than afterLevel, or nil when none remains.
func (r *TaskRepository) NextPending(ctx context.Context, businessEventID uuid.UUID, afterLevel int) (*approval.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM approval_tasks
		WHERE business_event_id = $1 AND approval_level > $2 AND status = $3
		ORDER BY approval_level
		LIMIT 1
	`

	task, err := scanTask(r.querier.QueryRow(ctx, query, businessEventID, afterLevel, shared.TaskStatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No further pending task
		}
		r.logger.Error("Failed to get next pending approval task",
			"business_event_id", businessEventID.String(),
			"error", err,
		)
		return nil, fmt.Errorf("failed to get next pending approval task: %w", err)
	}

	return task, nil
}

// GetByEventID returns all tasks of one event ordered by approval level
func (r *TaskRepository) GetByEventID(ctx context.Context, businessEventID uuid.UUID) ([]*approval.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM approval_tasks
		WHERE business_event_id = $1
		ORDER BY approval_level
	`

	rows, err := r.querier.Query(ctx, query, businessEventID)
	if err != nil {
		r.logger.Error("Failed to get approval tasks for event", "business_event_id", businessEventID.String(), "error", err)
		return nil, fmt.Errorf("failed to get approval tasks for event: %w", err)
	}
	defer rows.Close()

	var tasks []*approval.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.Error("Failed to scan approval task", "error", err)
			return nil, fmt.Errorf("failed to scan approval task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over approval tasks", "error", err)
		return nil, fmt.Errorf("error iterating over approval tasks: %w", err)
	}

	return tasks, nil
}
