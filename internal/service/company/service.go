package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
}

func NewCompanyService(companyRepository company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{CompanyRepository: companyRepository}
}

// Get implements company.CompanyService.
func (c *CompanyServiceImpl) Get(ctx context.Context, companyID string) (company.CompanyResponse, error) {
	if companyID == "" {
		return company.CompanyResponse{}, company.ErrCompanyNotFound
	}

	companyData, err := c.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.ToResponse(companyData), nil
}

// Update implements company.CompanyService. Role checks happen in the router.
func (c *CompanyServiceImpl) Update(ctx context.Context, companyID string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := c.CompanyRepository.Update(ctx, companyID, req); err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to update company: %w", err)
	}

	updated, err := c.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("company settings updated",
		"company_id", companyID,
		"work_days", updated.WorkDays,
		"vacation_days", updated.VacationDays,
		"exclude_weekends", updated.ExcludeWeekends,
	)
	return company.ToResponse(updated), nil
}
