package company

import (
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	AccessCode      string    `json:"access_code"`
	Plan            string    `json:"plan"`
	WorkDays        int       `json:"work_days"`
	VacationDays    int       `json:"vacation_days"`
	ExcludeWeekends bool      `json:"exclude_weekends"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		AccessCode:      c.AccessCode,
		Plan:            c.Plan,
		WorkDays:        c.WorkDays,
		VacationDays:    c.VacationDays,
		ExcludeWeekends: c.ExcludeWeekends,
		CreatedAt:       c.CreatedAt,
	}
}

// UpdateCompanyRequest replaces the company settings. A nil ExcludeWeekends
// means weekends are excluded.
type UpdateCompanyRequest struct {
	Name            string `json:"name"`
	WorkDays        int    `json:"work_days"`
	VacationDays    int    `json:"vacation_days"`
	Plan            string `json:"plan"`
	ExcludeWeekends *bool  `json:"exclude_weekends,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.WorkDays < 1 || r.WorkDays > 7 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_days",
			Message: "work_days must be between 1 and 7",
		})
	}
	if r.VacationDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_days",
			Message: "vacation_days must not be negative",
		})
	}
	if validator.IsEmpty(r.Plan) {
		errs = append(errs, validator.ValidationError{
			Field:   "plan",
			Message: "plan is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ExcludeWeekendsOrDefault resolves the optional flag.
func (r *UpdateCompanyRequest) ExcludeWeekendsOrDefault() bool {
	if r.ExcludeWeekends == nil {
		return true
	}
	return *r.ExcludeWeekends
}
