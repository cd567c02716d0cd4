package auth

import (
	"context"
)

type AuthService interface {
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}
