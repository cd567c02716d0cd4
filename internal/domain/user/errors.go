package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserEmailExists          = errors.New("email already registered")
	ErrUserInactive             = errors.New("user is inactive")
	ErrInvalidRole              = errors.New("invalid role")
	ErrAdminAccessRequired      = errors.New("admin access required")
	ErrManagerAccessRequired    = errors.New("manager access required")
	ErrCannotModifySelf         = errors.New("cannot change own role or status")
	ErrCompanyIDRequired        = errors.New("company ID is required")
	ErrInsufficientVacationDays = errors.New("insufficient vacation days")
)
