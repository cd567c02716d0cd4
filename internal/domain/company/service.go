package company

import "context"

// CompanyService reads and changes the settings of the caller's own company.
type CompanyService interface {
	Get(ctx context.Context, companyID string) (CompanyResponse, error)
	Update(ctx context.Context, companyID string, req UpdateCompanyRequest) (CompanyResponse, error)
}
