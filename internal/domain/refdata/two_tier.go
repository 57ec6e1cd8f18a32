package refdata

import (
	"context"
	"errors"
	"log/slog"
)

// TwoTierProvider reads reference data from a primary provider and falls
// back to a secondary one when the primary has no matching row. Store
// errors other than not-found are returned as-is; the fallback only covers
// gaps in the data, not outages.
type TwoTierProvider struct {
	primary  Provider
	fallback Provider
	logger   *slog.Logger
}

// NewTwoTierProvider composes a primary and a fallback provider
func NewTwoTierProvider(logger *slog.Logger, primary, fallback Provider) *TwoTierProvider {
	return &TwoTierProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (p *TwoTierProvider) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	dept, err := p.primary.GetDepartment(ctx, id)
	if err != nil {
		var notFound ErrDepartmentNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}
		p.logger.Debug("Department missing from primary source, trying fallback", "department_id", id)
		return p.fallback.GetDepartment(ctx, id)
	}
	return dept, nil
}

func (p *TwoTierProvider) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	cust, err := p.primary.GetCustomer(ctx, id)
	if err != nil {
		var notFound ErrCustomerNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}
		p.logger.Debug("Customer missing from primary source, trying fallback", "customer_id", id)
		return p.fallback.GetCustomer(ctx, id)
	}
	return cust, nil
}

func (p *TwoTierProvider) GetAccountSubjectByCode(ctx context.Context, code string) (*AccountSubject, error) {
	subject, err := p.primary.GetAccountSubjectByCode(ctx, code)
	if err != nil {
		var notFound ErrAccountSubjectNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}
		p.logger.Debug("Account subject missing from primary source, trying fallback", "code", code)
		return p.fallback.GetAccountSubjectByCode(ctx, code)
	}
	return subject, nil
}

var _ Provider = (*TwoTierProvider)(nil)
