package company

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrAccessCodeExists  = errors.New("access code already exists")
)
