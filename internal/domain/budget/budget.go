package budget

import (
	"strconv"
	"time"
)

// Budget is a department/period spending ceiling. used_amount_cents is
// derived exclusively from posted EXPENSE ledger entries for the matching
// department and fiscal period.
type Budget struct {
	ID               int64     `json:"id"`
	DepartmentID     int64     `json:"department_id"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	AccountSubjectID *int64    `json:"account_subject_id,omitempty"`
	AmountCents      int64     `json:"amount_cents"`
	UsedAmountCents  int64     `json:"used_amount_cents"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Remaining returns the unconsumed part of the budget. Overspent budgets
// return a negative value; consumption is never blocked by the ceiling.
func (b *Budget) Remaining() int64 {
	return b.AmountCents - b.UsedAmountCents
}

// Key identifies the budget row used for consumption lookups
func (b *Budget) Key() string {
	return strconv.FormatInt(b.DepartmentID, 10) + "/" +
		strconv.Itoa(b.Year) + "-" + strconv.Itoa(b.Month)
}
