package refdata

import (
	"context"
	"strconv"
)

// Department is an organizational unit owning events and budgets
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Customer is the counterparty referenced by sale and contract events
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// AccountSubject is a bookkeeping account that ledger entries post against
type AccountSubject struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Provider supplies read-only reference data. The engine never writes
// reference rows; an external system owns them.
type Provider interface {
	GetDepartment(ctx context.Context, id int64) (*Department, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	GetAccountSubjectByCode(ctx context.Context, code string) (*AccountSubject, error)
}

// ErrDepartmentNotFound indicates a missing department
type ErrDepartmentNotFound struct {
	DepartmentID int64
}

func (e ErrDepartmentNotFound) Error() string {
	return "department not found: " + strconv.FormatInt(e.DepartmentID, 10)
}

// ErrCustomerNotFound indicates a missing customer
type ErrCustomerNotFound struct {
	CustomerID int64
}

func (e ErrCustomerNotFound) Error() string {
	return "customer not found: " + strconv.FormatInt(e.CustomerID, 10)
}

// ErrAccountSubjectNotFound indicates a missing account subject
type ErrAccountSubjectNotFound struct {
	Code string
}

func (e ErrAccountSubjectNotFound) Error() string {
	return "account subject not found: " + e.Code
}
