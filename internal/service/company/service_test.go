package company

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	company.CompanyRepository

	stored  map[string]company.Company
	updates int
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := f.stored[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	c, ok := f.stored[id]
	if !ok {
		return company.ErrCompanyNotFound
	}
	f.updates++
	c.Name = req.Name
	c.WorkDays = req.WorkDays
	c.VacationDays = req.VacationDays
	c.Plan = req.Plan
	c.ExcludeWeekends = req.ExcludeWeekendsOrDefault()
	f.stored[id] = c
	return nil
}

func newRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{stored: map[string]company.Company{
		"c1": {ID: "c1", Name: "Acme", AccessCode: "VC-ABCDEF123", Plan: "free", WorkDays: 5, VacationDays: 30, ExcludeWeekends: true},
	}}
}

func TestCompanyService_Get(t *testing.T) {
	svc := NewCompanyService(newRepo())

	resp, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.Name)
	assert.Equal(t, "VC-ABCDEF123", resp.AccessCode)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyService_Update(t *testing.T) {
	repo := newRepo()
	svc := NewCompanyService(repo)
	includeWeekends := false

	resp, err := svc.Update(context.Background(), "c1", company.UpdateCompanyRequest{
		Name:            "  Acme GmbH ",
		WorkDays:        6,
		VacationDays:    28,
		Plan:            "pro",
		ExcludeWeekends: &includeWeekends,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme GmbH", resp.Name)
	assert.Equal(t, 6, resp.WorkDays)
	assert.Equal(t, 28, resp.VacationDays)
	assert.False(t, resp.ExcludeWeekends)
	assert.Equal(t, 1, repo.updates)
}

func TestCompanyService_Update_DefaultsToExcludingWeekends(t *testing.T) {
	repo := newRepo()
	svc := NewCompanyService(repo)

	resp, err := svc.Update(context.Background(), "c1", company.UpdateCompanyRequest{
		Name: "Acme", WorkDays: 5, VacationDays: 30, Plan: "free",
	})
	require.NoError(t, err)
	assert.True(t, resp.ExcludeWeekends)
}

func TestCompanyService_Update_Validation(t *testing.T) {
	repo := newRepo()
	svc := NewCompanyService(repo)

	_, err := svc.Update(context.Background(), "c1", company.UpdateCompanyRequest{
		Name: "", WorkDays: 8, VacationDays: -1, Plan: "free",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	fields := validationErrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "work_days")
	assert.Contains(t, fields, "vacation_days")
	assert.Zero(t, repo.updates)
}
