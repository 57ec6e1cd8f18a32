package budget

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository manages budget rows and their consumption counter
type Repository interface {
	Get(ctx context.Context, departmentID int64, year, month int) (*Budget, error)

	// Consume atomically increments used_amount_cents for the department and
	// period. Concurrent consumers of the same row serialize on the row lock
	// taken by the UPDATE. Returns ErrBudgetNotFound when no row matches;
	// callers treat that as a logged soft-skip, not a failure.
	Consume(ctx context.Context, departmentID int64, year, month int, amountCents int64) error

	WithTx(tx pgx.Tx) Repository
}

// ErrBudgetNotFound indicates no budget row covers the department/period
type ErrBudgetNotFound struct {
	DepartmentID int64
	Year         int
	Month        int
}

func (e ErrBudgetNotFound) Error() string {
	return "no budget row for department " + strconv.FormatInt(e.DepartmentID, 10) +
		" period " + strconv.Itoa(e.Year) + "-" + strconv.Itoa(e.Month)
}
