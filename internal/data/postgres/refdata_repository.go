package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/fincore-approval-engine/internal/domain/refdata"
	"github.com/fincore-approval-engine/internal/platform/persistence"
)

// RefdataRepository implements the refdata.Provider interface against the
// reference tables. It is the primary provider in the two tier lookup; the
// static fallback fills the gaps.
type RefdataRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRefdataRepository creates a new PostgreSQL reference data provider
func NewRefdataRepository(logger *slog.Logger, db *persistence.PostgresDB) refdata.Provider {
	return &RefdataRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// GetDepartment retrieves a department by its ID
func (r *RefdataRepository) GetDepartment(ctx context.Context, id int64) (*refdata.Department, error) {
	query := `
		SELECT id, name
		FROM departments
		WHERE id = $1
	`

	var d refdata.Department
	err := r.querier.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, refdata.ErrDepartmentNotFound{DepartmentID: id}
		}
		r.logger.Error("Failed to get department", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &d, nil
}

// GetCustomer retrieves a customer by its ID
func (r *RefdataRepository) GetCustomer(ctx context.Context, id int64) (*refdata.Customer, error) {
	query := `
		SELECT id, name, COALESCE(contact, '')
		FROM customers
		WHERE id = $1
	`

	var c refdata.Customer
	err := r.querier.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Contact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, refdata.ErrCustomerNotFound{CustomerID: id}
		}
		r.logger.Error("Failed to get customer", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &c, nil
}

// GetAccountSubjectByCode retrieves an account subject by its code
func (r *RefdataRepository) GetAccountSubjectByCode(ctx context.Context, code string) (*refdata.AccountSubject, error) {
	query := `
		SELECT id, code, name
		FROM account_subjects
		WHERE code = $1
	`

	var s refdata.AccountSubject
	err := r.querier.QueryRow(ctx, query, code).Scan(&s.ID, &s.Code, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, refdata.ErrAccountSubjectNotFound{Code: code}
		}
		r.logger.Error("Failed to get account subject", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get account subject: %w", err)
	}

	return &s, nil
}
