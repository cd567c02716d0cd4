package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, newCompany Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	GetByAccessCode(ctx context.Context, accessCode string) (Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error
	PolicySource
}

// PolicySource returns the day-counting policy of a tenant.
type PolicySource interface {
	GetPolicy(ctx context.Context, companyID string) (Policy, error)
}
