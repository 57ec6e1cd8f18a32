package refdata

import "context"

// StaticProvider serves a fixed in-memory reference set. It backs the
// fallback tier so that a freshly provisioned store with no reference rows
// still resolves the baseline departments and account subjects.
type StaticProvider struct {
	departments     map[int64]Department
	customers       map[int64]Customer
	accountSubjects map[string]AccountSubject
}

// NewStaticProvider creates a provider over the given reference rows
func NewStaticProvider(departments []Department, customers []Customer, subjects []AccountSubject) *StaticProvider {
	p := &StaticProvider{
		departments:     make(map[int64]Department, len(departments)),
		customers:       make(map[int64]Customer, len(customers)),
		accountSubjects: make(map[string]AccountSubject, len(subjects)),
	}
	for _, d := range departments {
		p.departments[d.ID] = d
	}
	for _, c := range customers {
		p.customers[c.ID] = c
	}
	for _, s := range subjects {
		p.accountSubjects[s.Code] = s
	}
	return p
}

// DefaultStaticProvider returns the baseline reference set shipped with
// the engine.
func DefaultStaticProvider() *StaticProvider {
	return NewStaticProvider(
		[]Department{
			{ID: 1, Name: "Finance"},
			{ID: 2, Name: "Procurement"},
			{ID: 3, Name: "Sales"},
			{ID: 4, Name: "Administration"},
		},
		nil,
		[]AccountSubject{
			{ID: 1, Code: "1001", Name: "Cash"},
			{ID: 2, Code: "1002", Name: "Bank Deposits"},
			{ID: 3, Code: "6001", Name: "Main Operating Revenue"},
			{ID: 4, Code: "6401", Name: "Main Operating Costs"},
			{ID: 5, Code: "6602", Name: "Administrative Expenses"},
		},
	)
}

func (p *StaticProvider) GetDepartment(_ context.Context, id int64) (*Department, error) {
	if d, ok := p.departments[id]; ok {
		return &d, nil
	}
	return nil, ErrDepartmentNotFound{DepartmentID: id}
}

func (p *StaticProvider) GetCustomer(_ context.Context, id int64) (*Customer, error) {
	if c, ok := p.customers[id]; ok {
		return &c, nil
	}
	return nil, ErrCustomerNotFound{CustomerID: id}
}

func (p *StaticProvider) GetAccountSubjectByCode(_ context.Context, code string) (*AccountSubject, error) {
	if s, ok := p.accountSubjects[code]; ok {
		return &s, nil
	}
	return nil, ErrAccountSubjectNotFound{Code: code}
}

var _ Provider = (*StaticProvider)(nil)
