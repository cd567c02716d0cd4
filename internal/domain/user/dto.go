package user

import (
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"company_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	VacationDaysTotal int       `json:"vacation_days_total"`
	VacationDaysUsed  int       `json:"vacation_days_used"`
	VacationDaysLeft  int       `json:"vacation_days_left"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		CompanyID:         u.CompanyID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		VacationDaysTotal: u.VacationDaysTotal,
		VacationDaysUsed:  u.VacationDaysUsed,
		VacationDaysLeft:  u.AvailableDays(),
		Active:            u.Active,
		CreatedAt:         u.CreatedAt,
	}
}

// AdjustVacationDaysRequest sets a new vacation total for a user
type AdjustVacationDaysRequest struct {
	UserID            string `json:"-"`
	VacationDaysTotal *int   `json:"vacation_days_total"`
}

func (r *AdjustVacationDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Negative totals are rejected; totals below the used count are allowed.
	if r.VacationDaysTotal == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_days_total",
			Message: "vacation_days_total is required",
		})
	} else if *r.VacationDaysTotal < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_days_total",
			Message: "vacation_days_total must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRoleRequest represents request to update user role
type UpdateUserRoleRequest struct {
	UserID string `json:"-"`
	Role   string `json:"role"`
}

func (r *UpdateUserRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, manager, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToggleActiveResponse reports the new active flag
type ToggleActiveResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}
