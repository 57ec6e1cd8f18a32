package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/budget"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// BudgetRepository implements the budget.Repository interface for PostgreSQL
type BudgetRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewBudgetRepository creates a new PostgreSQL budget repository
func NewBudgetRepository(logger *slog.Logger, db *persistence.PostgresDB) budget.Repository {
	return &BudgetRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *BudgetRepository) WithTx(tx pgx.Tx) budget.Repository {
	return &BudgetRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Get retrieves the budget row for a department and fiscal period
func (r *BudgetRepository) Get(ctx context.Context, departmentID int64, year, month int) (*budget.Budget, error) {
	query := `
		SELECT id, department_id, year, month, account_subject_id, amount_cents, used_amount_cents, updated_at
		FROM budgets
		WHERE department_id = $1 AND year = $2 AND month = $3
	`

	var b budget.Budget
	err := r.querier.QueryRow(ctx, query, departmentID, year, month).Scan(
		&b.ID,
		&b.DepartmentID,
		&b.Year,
		&b.Month,
		&b.AccountSubjectID,
		&b.AmountCents,
		&b.UsedAmountCents,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, budget.ErrBudgetNotFound{DepartmentID: departmentID, Year: year, Month: month}
		}
		r.logger.Error("Failed to get budget",
			"department_id", departmentID,
			"year", year,
			"month", month,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &b, nil
}

// Consume atomically increments used_amount_cents for the department and
// period. The UPDATE's row lock serializes concurrent consumers, so two
// expense postings against the same budget both land.
func (r *BudgetRepository) Consume(ctx context.Context, departmentID int64, year, month int, amountCents int64) error {
	query := `
		UPDATE budgets
		SET used_amount_cents = used_amount_cents + $1, updated_at = NOW()
		WHERE department_id = $2 AND year = $3 AND month = $4
	`

	result, err := r.querier.Exec(ctx, query, amountCents, departmentID, year, month)
	if err != nil {
		r.logger.Error("Failed to consume budget",
			"department_id", departmentID,
			"year", year,
			"month", month,
			"amount_cents", amountCents,
			"error", err,
		)
		return fmt.Errorf("failed to consume budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return budget.ErrBudgetNotFound{DepartmentID: departmentID, Year: year, Month: month}
	}

	return nil
}
