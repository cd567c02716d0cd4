package auth

import (
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

type RegisterAdminRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

func (r *RegisterAdminRequest) Validate() error {
	errs := validateAccount(r.Name, r.Email, r.Password)

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}
	if len(r.CompanyName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RegisterRequest joins an existing company through its access code.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	AccessCode string `json:"access_code"`
	Role       string `json:"role,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	errs := validateAccount(r.Name, r.Email, r.Password)

	if validator.IsEmpty(r.AccessCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "access_code",
			Message: "access_code is required",
		})
	} else if !validator.IsValidAccessCode(r.AccessCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "access_code",
			Message: "access_code must look like VC-XXXXXXXXX",
		})
	}

	if r.Role != "" && !validator.IsInSlice(r.Role, []string{string(user.RoleEmployee), string(user.RoleManager)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee or manager",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RoleOrDefault returns the requested role, employee when none was given.
func (r *RegisterRequest) RoleOrDefault() user.Role {
	if r.Role == "" {
		return user.RoleEmployee
	}
	return user.Role(r.Role)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompanyInfo struct {
	Name       string `json:"name"`
	AccessCode string `json:"access_code"`
}

type TokenResponse struct {
	AccessToken          string            `json:"access_token"`
	AccessTokenExpiresAt int64             `json:"access_token_expires_at"`
	User                 user.UserResponse `json:"user"`
	Company              *CompanyInfo      `json:"company,omitempty"`
}

func validateAccount(name, email, password string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	return errs
}
