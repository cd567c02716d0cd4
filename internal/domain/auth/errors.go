package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidAccessCode  = errors.New("invalid access code")
	ErrEmailExists        = errors.New("email already registered")
)
